package storex

// Unsubscribe removes the subscription it was returned for.
// Calling it more than once is a no-op.
type Unsubscribe func()

type subscriber struct {
	id uint64
	fn func()
}

// Store holds a single piece of state and applies a Reducer on dispatch.
// Dispatch is fully synchronous: the reducer runs, the state is replaced,
// and every registered subscriber is notified before Dispatch returns.
//
// A Store is not safe for concurrent use; callers that share a store across
// goroutines should use the internal/core engine instead.
type Store[S any] struct {
	reducer  Reducer[S]
	state    S
	subs     []subscriber
	nextSub  uint64
	dispatch Dispatcher
}

// Option configures a Store during construction.
type Option[S any] func(*Store[S])

// WithMiddleware wraps the store's dispatch function. Middleware run in the
// order given, outermost-first.
func WithMiddleware[S any](mw ...Middleware[S]) Option[S] {
	return func(s *Store[S]) {
		for i := len(mw) - 1; i >= 0; i-- {
			if mw[i] == nil {
				continue
			}
			s.dispatch = mw[i](s, s.dispatch)
		}
	}
}

// New creates a Store with the given reducer and initial state.
func New[S any](reducer Reducer[S], initial S, opts ...Option[S]) *Store[S] {
	s := &Store[S]{
		reducer: reducer,
		state:   initial,
	}
	s.dispatch = s.dispatchCore

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// GetState returns the current state snapshot. No side effects.
func (s *Store[S]) GetState() S {
	return s.state
}

// Dispatch applies the reducer to the current state and the given action,
// replaces the stored state, then notifies subscribers in registration order.
// Subscribers are always notified, whether or not the state changed.
func (s *Store[S]) Dispatch(action Action) {
	s.dispatch(action)
}

func (s *Store[S]) dispatchCore(action Action) {
	s.state = s.reducer(s.state, action)

	// Snapshot the list so (un)subscription from inside a callback takes
	// effect on the next dispatch, not mid-notification.
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	for _, sub := range subs {
		sub.fn()
	}
}

// Subscribe registers a callback invoked after every dispatch. The returned
// Unsubscribe removes exactly this registration; the same function value may
// be subscribed multiple times and each registration is independent.
func (s *Store[S]) Subscribe(fn func()) Unsubscribe {
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
		// Already removed, nothing to do.
	}
}
