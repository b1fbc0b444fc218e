package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// FromContext extracts the logger from context.
// Returns fallback if no logger is stored, or the default logger when
// fallback is nil too.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return logger
		}
	}

	if fallback != nil {
		return fallback
	}

	return slog.Default()
}

// WithContext stores a logger in the context. Calls deeper in the SDK pick
// it up, so a caller can scope logging per request.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithRequestID adds a request ID attribute to the logger in context.
// Returns a new context with the enriched logger.
func WithRequestID(ctx context.Context, fallback *slog.Logger, requestID string) context.Context {
	logger := FromContext(ctx, fallback).With(slog.String("request_id", requestID))
	return WithContext(ctx, logger)
}
