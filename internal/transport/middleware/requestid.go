package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mindgraphix/platform/pkg/logger"
)

type ctxKey int

const requestIDKey ctxKey = 0

const traceHeader = "X-Trace-ID"

// RequestID tags each request with a trace ID. An inbound X-Trace-ID header
// is honored so IDs survive the hop through the gateway; otherwise a fresh
// UUID is minted. The ID rides the request context and the context logger,
// and is echoed back on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), requestIDKey, traceID)
		ctx = logger.With(ctx, "traceID", traceID)

		w.Header().Set(traceHeader, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the trace ID set by RequestID, or "" when the
// middleware did not run.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
