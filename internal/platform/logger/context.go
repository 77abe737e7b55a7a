package logger

import (
	"context"
	"log/slog"
)

// contextKey is an unexported type to avoid context key collisions.
type contextKey struct{}

// loggerKey is the context key under which the request-scoped logger lives.
var loggerKey = contextKey{}

// WithContext returns a copy of ctx carrying the given logger. Handlers and
// middleware attach request-scoped attributes (trace ID, component) this way
// so lower layers log with the same correlation fields.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from the context, falling back to the
// process default logger when none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger from the context, falling back to
// the provided default. Components pass their own tagged logger as the
// fallback so logs always carry a component attribute.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
