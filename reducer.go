package storex

import (
	"log/slog"
	"time"
)

// Reducer computes the next state from the current state and an action.
// Reducers must be pure: no mutation of the input state, no side effects,
// and unknown action types must return the input state unchanged.
type Reducer[S any] func(state S, action Action) S

// Dispatcher is the dispatch entry point a middleware wraps.
type Dispatcher func(action Action)

// Middleware wraps the store's dispatch function. Middleware are applied
// outermost-first: the first middleware passed to New sees the action first.
type Middleware[S any] func(store *Store[S], next Dispatcher) Dispatcher

// LoggingMiddleware logs each dispatched action and its duration.
func LoggingMiddleware[S any](logger *slog.Logger) Middleware[S] {
	return func(store *Store[S], next Dispatcher) Dispatcher {
		return func(action Action) {
			start := time.Now()
			next(action)
			logger.Info("dispatch",
				"action", action.Type,
				"duration", time.Since(start),
			)
		}
	}
}
