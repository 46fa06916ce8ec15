package extensibility

import (
	"context"
	"log/slog"
	"time"

	"github.com/comalice/storex/internal/primitives"
)

// Dispatcher is anything actions can be dispatched to. Satisfied by
// core.Store.
type Dispatcher interface {
	Dispatch(ctx context.Context, action primitives.Action)
}

// LoggingDispatcher wraps a Dispatcher and adds structured logging around
// each dispatch.
type LoggingDispatcher struct {
	inner  Dispatcher
	logger *slog.Logger
}

// NewLoggingDispatcher creates a LoggingDispatcher wrapping the given inner
// dispatcher.
func NewLoggingDispatcher(inner Dispatcher, logger *slog.Logger) *LoggingDispatcher {
	return &LoggingDispatcher{inner: inner, logger: logger}
}

// Dispatch logs before and after delegating to the inner dispatcher.
func (d *LoggingDispatcher) Dispatch(ctx context.Context, action primitives.Action) {
	d.logger.Info("dispatching", "action", action.Type)
	start := time.Now()
	d.inner.Dispatch(ctx, action)
	d.logger.Info("dispatched", "action", action.Type, "duration", time.Since(start))
}
