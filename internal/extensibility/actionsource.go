package extensibility

import (
	"context"
	"time"

	"github.com/comalice/storex/internal/primitives"
)

// ActionSource produces actions for a store to consume.
type ActionSource interface {
	Actions() <-chan primitives.Action
}

// ChannelActionSource is an ActionSource backed by a Go channel. Provides a
// simple way to feed externally produced actions into a store.
type ChannelActionSource struct {
	ch chan primitives.Action
}

// NewChannelActionSource creates a ChannelActionSource with the given channel.
// The channel should be buffered if backpressure handling is needed.
func NewChannelActionSource(ch chan primitives.Action) *ChannelActionSource {
	return &ChannelActionSource{ch: ch}
}

// Actions returns the receive-only channel of actions.
func (s *ChannelActionSource) Actions() <-chan primitives.Action {
	return s.ch
}

// TickerActionSource emits the same action periodically using time.Ticker.
// Useful for heartbeat-style stores.
type TickerActionSource struct {
	ch         chan primitives.Action
	actionType string
	payload    any
	ticker     *time.Ticker
	stop       chan struct{}
}

// NewTickerActionSource creates a TickerActionSource that emits an action
// every d duration.
func NewTickerActionSource(actionType string, payload any, d time.Duration) *TickerActionSource {
	ch := make(chan primitives.Action, 10)
	t := &TickerActionSource{
		ch:         ch,
		actionType: actionType,
		payload:    payload,
		ticker:     time.NewTicker(d),
		stop:       make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TickerActionSource) run() {
	for {
		select {
		case <-t.ticker.C:
			select {
			case t.ch <- primitives.NewAction(t.actionType, t.payload):
			default:
				// drop if full
			}
		case <-t.stop:
			t.ticker.Stop()
			close(t.ch)
			return
		}
	}
}

// Actions returns the action channel.
func (t *TickerActionSource) Actions() <-chan primitives.Action {
	return t.ch
}

// Stop stops the ticker and closes the channel.
func (t *TickerActionSource) Stop() {
	close(t.stop)
}

// Drive dispatches every action from source into dispatcher until the source
// channel closes or ctx is done.
func Drive(ctx context.Context, dispatcher Dispatcher, source ActionSource) {
	for {
		select {
		case action, ok := <-source.Actions():
			if !ok {
				return
			}
			dispatcher.Dispatch(ctx, action)
		case <-ctx.Done():
			return
		}
	}
}
