// Package gateway is the edge proxy that fronts the platform services. It
// forwards /api/{service}/* to the upstream configured for that prefix.
package gateway

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi"

	"github.com/mindgraphix/platform/internal"
	"github.com/mindgraphix/platform/internal/transport"
	"github.com/mindgraphix/platform/internal/transport/middleware"
)

type Proxy struct {
	*transport.BaseHandler
	upstreams map[string]*httputil.ReverseProxy
	timeout   time.Duration
	logger    *slog.Logger
}

// NewProxy builds one reverse proxy per upstream. Entries with an empty or
// unparseable URL are skipped so a partially configured gateway still serves
// the routes it knows about.
func NewProxy(baseHandler *transport.BaseHandler, upstreams map[string]string, upstreamTimeout time.Duration, logger *slog.Logger) *Proxy {
	if upstreamTimeout <= 0 {
		upstreamTimeout = 15 * time.Second
	}

	p := &Proxy{
		BaseHandler: baseHandler,
		upstreams:   make(map[string]*httputil.ReverseProxy, len(upstreams)),
		timeout:     upstreamTimeout,
		logger:      logger,
	}

	for name, raw := range upstreams {
		if raw == "" {
			continue
		}
		target, err := url.Parse(raw)
		if err != nil {
			logger.Warn("skipping upstream with invalid url", "service", name, "url", raw)
			continue
		}
		p.upstreams[name] = p.buildReverseProxy(name, target)
	}

	return p
}

func (p *Proxy) buildReverseProxy(name string, target *url.URL) *httputil.ReverseProxy {
	proxy := httputil.NewSingleHostReverseProxy(target)

	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Host = target.Host
		// propagate the trace ID so upstream logs correlate
		if id := middleware.RequestIDFromContext(r.Context()); id != "" {
			r.Header.Set("X-Trace-ID", id)
		}
	}

	proxy.Transport = &http.Transport{
		ResponseHeaderTimeout: p.timeout,
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		p.logger.Error("upstream request failed",
			"service", name,
			"path", r.URL.Path,
			"error", err)
		status, body := internal.NewUpstreamError("service unavailable", err).ToHTTPResponse()
		p.WriteJSON(w, status, body)
	}

	return proxy
}

// Forward routes /api/{service}/* to the matching upstream, stripping the
// /api/{service} prefix so upstreams see their own paths.
func (p *Proxy) Forward(w http.ResponseWriter, r *http.Request) {
	service := chi.URLParam(r, "service")

	proxy, ok := p.upstreams[service]
	if !ok {
		appErr := internal.NewNotFoundError("unknown service", internal.ErrCodeUnknownService)
		status, body := appErr.ToHTTPResponse()
		p.WriteJSON(w, status, body)
		return
	}

	r.URL.Path = strippedPath(r.URL.Path, service)
	proxy.ServeHTTP(w, r)
}

func (p *Proxy) Health(w http.ResponseWriter, r *http.Request) {
	p.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "gateway",
	})
}

// Routes returns the gateway router. Registered on its own server, separate
// from the service router.
func (p *Proxy) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Get("/health", p.Health)
	r.HandleFunc("/api/{service}", p.Forward)
	r.HandleFunc("/api/{service}/*", p.Forward)
	return r
}

func strippedPath(path, service string) string {
	prefix := "/api/" + service
	stripped := strings.TrimPrefix(path, prefix)
	if stripped == "" || !strings.HasPrefix(stripped, "/") {
		stripped = "/" + stripped
	}
	return stripped
}
