package gateway_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mindgraphix/platform/internal/gateway"
	"github.com/mindgraphix/platform/internal/transport"
)

func TestGateway(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Gateway Suite")
}

var _ = Describe("Proxy", func() {
	var (
		upstream *httptest.Server
		proxy    *gateway.Proxy
		router   http.Handler
	)

	BeforeEach(func() {
		upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"path": r.URL.Path})
		}))

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		proxy = gateway.NewProxy(
			&transport.BaseHandler{Logger: slogger},
			map[string]string{
				"projects": upstream.URL,
				"broken":   "http://127.0.0.1:1",
			},
			2*time.Second,
			slogger,
		)
		router = proxy.Routes()
	})

	AfterEach(func() {
		upstream.Close()
	})

	It("should forward to the upstream with the prefix stripped", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/projects/projects/1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))

		var body map[string]string
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body["path"]).To(Equal("/projects/1"))
	})

	It("should return 404 for an unknown service prefix", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/nope/anything", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should return 502 when the upstream is unreachable", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/broken/anything", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusBadGateway))
	})

	It("should answer health checks itself", func() {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))

		var body map[string]string
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body["service"]).To(Equal("gateway"))
	})
})
