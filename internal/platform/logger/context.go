package logger

import (
	"context"
	"log/slog"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{}

// loggerKey is the context key under which request-scoped loggers are stored.
var loggerKey = contextKey{}

// WithLogger returns a copy of the context carrying the given logger.
// Middleware uses this to attach a request-scoped logger (e.g. one tagged
// with a trace ID) that downstream code retrieves with FromContext.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from the context, falling back to the
// process default logger when none is attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger from the context, falling back
// to the provided default. Components hold a component-tagged logger and
// pass it here so request-scoped attributes win when present.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
