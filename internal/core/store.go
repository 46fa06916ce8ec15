// Package core provides the runtime core tier of the store engine.
// This includes the Store runtime, the compiled reducer, snapshotting, and
// subscriber management.
// Dependencies: internal/primitives.
// Pluggable components are defined here as interfaces and wired via
// functional options.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comalice/storex/internal/primitives"
)

// Pluggable component interfaces.
// Implementations live in internal/extensibility and internal/production.

// GuardEvaluator evaluates an optional rule guard against a state snapshot
// and the dispatched action. A false result skips the rule.
type GuardEvaluator interface {
	Eval(state map[string]any, guard string, action primitives.Action) bool
}

// Persister saves and loads store snapshots.
type Persister interface {
	Save(ctx context.Context, snapshot StoreSnapshot) error
	Load(ctx context.Context, storeID string) (StoreSnapshot, error)
}

// DispatchPublisher receives every dispatched action after the state swap.
type DispatchPublisher interface {
	Publish(ctx context.Context, action primitives.Action, metadata DispatchMetadata) error
	Close() error
}

// StoreSnapshot is the serializable snapshot of store runtime state.
type StoreSnapshot struct {
	StoreID   string                 `json:"storeID" yaml:"storeID"`
	Config    primitives.StoreConfig `json:"config" yaml:"config"`
	State     map[string]any         `json:"state" yaml:"state"`
	Seq       uint64                 `json:"seq" yaml:"seq"`
	Timestamp time.Time              `json:"timestamp" yaml:"timestamp"`
}

// DispatchMetadata annotates a published action.
type DispatchMetadata struct {
	StoreID    string    `json:"storeID" yaml:"storeID"`
	ActionType string    `json:"actionType" yaml:"actionType"`
	Seq        uint64    `json:"seq" yaml:"seq"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
}

// Option applies configuration to Store via the functional options pattern.
type Option func(*Store)

// WithGuardEvaluator sets the guard evaluator for guarded rules.
func WithGuardEvaluator(e GuardEvaluator) Option {
	return func(s *Store) { s.guardEval = e }
}

// WithPersister sets the snapshot persister used by Save and Restore.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithPublisher sets the post-dispatch publisher.
func WithPublisher(p DispatchPublisher) Option {
	return func(s *Store) { s.publisher = p }
}

// WithRegistry sets the versioned snapshot registry used by Checkpoint.
func WithRegistry(r Registry) Option {
	return func(s *Store) { s.registry = r }
}

// WithLogger sets the structured logger for dispatch logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

type subscription struct {
	id uuid.UUID
	fn func()
}

// Store is the config-driven engine instance.
// Thread-safe for concurrent Dispatch from multiple goroutines, but each
// dispatch is fully synchronous: reduce, swap, notify, publish, all before
// Dispatch returns.
type Store struct {
	config primitives.StoreConfig
	state  *stateMap

	mu   sync.Mutex // serializes dispatch and guards the subscriber list
	seq  uint64
	subs []subscription

	// Pluggable components (nil = defaults/absent)
	guardEval GuardEvaluator
	persister Persister
	publisher DispatchPublisher
	registry  Registry
	logger    *slog.Logger
}

// NewStore validates the config and creates a Store at its initial state.
func NewStore(config primitives.StoreConfig, opts ...Option) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	s := &Store{
		config: config,
		state:  newStateMap(config.InitialState()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the store's configured identifier.
func (s *Store) ID() string {
	return s.config.ID
}

// Config returns the store's configuration.
func (s *Store) Config() primitives.StoreConfig {
	return s.config
}

// Seq returns the number of dispatches applied so far.
func (s *Store) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// GetState returns a snapshot copy of the current state. No side effects.
func (s *Store) GetState() map[string]any {
	return s.state.Snapshot()
}

// Dispatch applies the configured rules for the action's type, replaces the
// state, then synchronously notifies subscribers in registration order and
// hands the action to the publisher. Unknown action types apply no rules but
// still notify, so observers see every dispatch.
func (s *Store) Dispatch(ctx context.Context, action primitives.Action) {
	s.mu.Lock()
	prev := s.state.Snapshot()
	next := s.reduce(prev, action)
	s.state.LoadAll(next)
	s.seq++
	meta := DispatchMetadata{
		StoreID:    s.config.ID,
		ActionType: action.Type,
		Seq:        s.seq,
		Timestamp:  time.Now().UTC(),
	}
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Debug("dispatch",
			"store", meta.StoreID,
			"action", meta.ActionType,
			"seq", meta.Seq,
		)
	}

	for _, sub := range subs {
		sub.fn()
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, action, meta); err != nil && s.logger != nil {
			s.logger.Warn("publish failed", "store", meta.StoreID, "error", err)
		}
	}
}

// Subscribe registers a callback invoked after every dispatch. The returned
// func removes exactly this registration; calling it more than once is a
// no-op.
func (s *Store) Subscribe(fn func()) func() {
	id := uuid.New()
	s.mu.Lock()
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Snapshot returns the current serializable snapshot.
func (s *Store) Snapshot() StoreSnapshot {
	s.mu.Lock()
	seq := s.seq
	s.mu.Unlock()

	return StoreSnapshot{
		StoreID:   s.config.ID,
		Config:    s.config,
		State:     s.state.Snapshot(),
		Seq:       seq,
		Timestamp: time.Now().UTC(),
	}
}

// Save persists the current snapshot through the configured Persister.
func (s *Store) Save(ctx context.Context) error {
	if s.persister == nil {
		return fmt.Errorf("store %q: no persister configured", s.config.ID)
	}
	return s.persister.Save(ctx, s.Snapshot())
}

// Restore loads the persisted snapshot for this store and replaces the
// current state. Loaded values are coerced and re-clamped against the
// config's bounds.
func (s *Store) Restore(ctx context.Context) error {
	if s.persister == nil {
		return fmt.Errorf("store %q: no persister configured", s.config.ID)
	}
	snapshot, err := s.persister.Load(ctx, s.config.ID)
	if err != nil {
		return err
	}

	state := make(map[string]any, len(s.config.Fields))
	for name, field := range s.config.Fields {
		v, ok := snapshot.State[name]
		if !ok {
			state[name] = field.Initial
			continue
		}
		state[name] = field.ClampValue(coerceInt(v, field.Initial))
	}

	s.mu.Lock()
	s.state.LoadAll(state)
	s.seq = snapshot.Seq
	s.mu.Unlock()
	return nil
}

// Checkpoint registers the current snapshot with the configured Registry
// under a computed version and returns that version.
func (s *Store) Checkpoint(ctx context.Context) (string, error) {
	if s.registry == nil {
		return "", fmt.Errorf("store %q: no registry configured", s.config.ID)
	}
	snapshot := s.Snapshot()
	// Seq suffix keeps versions unique across checkpoints of one config.
	version := fmt.Sprintf("%s-%08d", primitives.ComputeVersion(&snapshot.Config), snapshot.Seq)
	if err := s.registry.Register(ctx, s.config.ID, version, snapshot); err != nil {
		return "", err
	}
	return version, nil
}
