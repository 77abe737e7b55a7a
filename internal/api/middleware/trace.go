package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mindluster/kanban-api/internal/api/shared"
)

// TraceMiddleware stamps every request with a trace ID before any handler
// runs. Handlers and the error responder read it back through
// shared.GetTraceID, so it has to sit at the front of the chain.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
