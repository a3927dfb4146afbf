package log

import (
	"context"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// WithLogger returns a child context carrying the given logger, usually
// one enriched with request-scoped fields.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// Ctx extracts the logger carried by ctx, falling back to the global
// logger when none was attached.
func Ctx(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
		return l
	}
	return L()
}
