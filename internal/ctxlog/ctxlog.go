// Package ctxlog hands each HTTP request of the planner its own logger.
//
// The request middleware tags a logger with the method and endpoint path and
// stores it in the request context; handlers pull it back out so every grid
// edit or solve is logged against the endpoint that caused it.
package ctxlog

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request logger stored in ctx. Code running outside
// a request, such as startup or tests, gets slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}
