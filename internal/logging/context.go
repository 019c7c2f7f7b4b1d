package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// loggerKey is where a command keeps its logger within a context
type loggerKey struct{}

// WithLogger attaches `logger` to `ctx`, so everything running under
// a command logs through the same logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger attached to `ctx` with WithLogger,
// falling back to the default logger.
func FromContext(ctx context.Context) *log.Logger {
	if logger, _ := ctx.Value(loggerKey{}).(*log.Logger); logger != nil {
		return logger
	}
	return Default()
}
