package devtools

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comalice/storex/internal/core"
	"github.com/comalice/storex/internal/primitives"
)

// Entry is one recorded dispatch: the action and the state it produced.
type Entry struct {
	ID        uuid.UUID         `json:"id" yaml:"id"`
	Seq       uint64            `json:"seq" yaml:"seq"`
	Action    primitives.Action `json:"action" yaml:"action"`
	State     map[string]any    `json:"state" yaml:"state"`
	Timestamp time.Time         `json:"timestamp" yaml:"timestamp"`
}

// Recorder wraps a core.Store and journals every dispatch that flows through
// it. It satisfies the same dispatch surface as the store, so callers swap it
// in transparently.
type Recorder struct {
	store *core.Store

	mu      sync.Mutex
	journal []Entry
}

// NewRecorder creates a Recorder around the given store.
func NewRecorder(store *core.Store) *Recorder {
	return &Recorder{store: store}
}

// Dispatch delegates to the wrapped store, then records the action and the
// resulting state snapshot.
func (r *Recorder) Dispatch(ctx context.Context, action primitives.Action) {
	r.store.Dispatch(ctx, action)

	entry := Entry{
		ID:        uuid.New(),
		Seq:       r.store.Seq(),
		Action:    action,
		State:     r.store.GetState(),
		Timestamp: time.Now().UTC(),
	}

	r.mu.Lock()
	r.journal = append(r.journal, entry)
	r.mu.Unlock()
}

// Store returns the wrapped store.
func (r *Recorder) Store() *core.Store {
	return r.store
}

// Journal returns a copy of the recorded entries in dispatch order.
func (r *Recorder) Journal() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, len(r.journal))
	copy(out, r.journal)
	return out
}

// Len returns the number of recorded entries.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.journal)
}

// Reset discards the journal.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.journal = nil
	r.mu.Unlock()
}
