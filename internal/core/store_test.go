package core

import (
	"context"
	"errors"
	"testing"

	"github.com/comalice/storex/internal/primitives"
)

func counterConfig() primitives.StoreConfig {
	return primitives.NewConfigBuilder("counter").
		Field("count", 0).Bounds(0, 15).
		Action("ADD").Add("count", 5).
		Action("SUBTRACT").Subtract("count", 5).
		Action("RESET").Set("count", 0).
		Build()
}

func count(t *testing.T, s *Store) int {
	t.Helper()
	v, ok := s.GetState()["count"].(int)
	if !ok {
		t.Fatalf("count is not an int: %v", s.GetState()["count"])
	}
	return v
}

func TestNewStoreRejectsInvalidConfig(t *testing.T) {
	_, err := NewStore(primitives.StoreConfig{ID: "broken"})
	if err == nil {
		t.Fatal("expected error for config without fields")
	}
}

func TestEngineCounterScenario(t *testing.T) {
	s, err := NewStore(counterConfig())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if got := count(t, s); got != 0 {
		t.Fatalf("initial count: expected 0, got %d", got)
	}

	s.Dispatch(ctx, primitives.NewAction("ADD", nil))
	s.Dispatch(ctx, primitives.NewAction("ADD", nil))
	if got := count(t, s); got != 10 {
		t.Errorf("after ADD, ADD: expected 10, got %d", got)
	}

	s.Dispatch(ctx, primitives.NewAction("SUBTRACT", nil))
	if got := count(t, s); got != 5 {
		t.Errorf("after SUBTRACT: expected 5, got %d", got)
	}

	s.Dispatch(ctx, primitives.NewAction("RESET", nil))
	if got := count(t, s); got != 0 {
		t.Errorf("after RESET: expected 0, got %d", got)
	}
}

func TestEngineClampBounds(t *testing.T) {
	s, err := NewStore(counterConfig())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		s.Dispatch(ctx, primitives.NewAction("ADD", nil))
	}
	if got := count(t, s); got != 15 {
		t.Errorf("expected saturation at 15, got %d", got)
	}

	for i := 0; i < 10; i++ {
		s.Dispatch(ctx, primitives.NewAction("SUBTRACT", nil))
	}
	if got := count(t, s); got != 0 {
		t.Errorf("expected saturation at 0, got %d", got)
	}
}

func TestEngineUnknownActionNotifiesWithoutChange(t *testing.T) {
	s, err := NewStore(counterConfig())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	var calls int
	s.Subscribe(func() { calls++ })

	s.Dispatch(ctx, primitives.NewAction("NO_SUCH_ACTION", nil))

	if got := count(t, s); got != 0 {
		t.Errorf("expected state unchanged, got %d", got)
	}
	if calls != 1 {
		t.Errorf("expected 1 notification, got %d", calls)
	}
	if s.Seq() != 1 {
		t.Errorf("expected seq 1, got %d", s.Seq())
	}
}

func TestEngineSubscriberOrderAndRemoval(t *testing.T) {
	s, err := NewStore(counterConfig())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	var order []string
	s.Subscribe(func() { order = append(order, "a") })
	unsubB := s.Subscribe(func() { order = append(order, "b") })
	s.Subscribe(func() { order = append(order, "c") })

	s.Dispatch(ctx, primitives.NewAction("ADD", nil))
	unsubB()
	unsubB() // idempotent
	s.Dispatch(ctx, primitives.NewAction("ADD", nil))

	want := []string{"a", "b", "c", "a", "c"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestEngineStateSnapshotIsCopy(t *testing.T) {
	s, err := NewStore(counterConfig())
	if err != nil {
		t.Fatal(err)
	}

	snap := s.GetState()
	snap["count"] = 99

	if got := count(t, s); got != 0 {
		t.Errorf("snapshot mutation leaked into store: %d", got)
	}
}

// stubGuard approves only guards equal to "yes".
type stubGuard struct {
	calls int
}

func (g *stubGuard) Eval(state map[string]any, guard string, action primitives.Action) bool {
	g.calls++
	return guard == "yes"
}

func TestEngineGuardedRules(t *testing.T) {
	config := primitives.NewConfigBuilder("guarded").
		Field("count", 0).Bounds(0, 15).
		Action("ADD").Add("count", 5).Guard("yes").
		Action("BLOCKED").Add("count", 5).Guard("no").
		Build()

	guard := &stubGuard{}
	s, err := NewStore(config, WithGuardEvaluator(guard))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	s.Dispatch(ctx, primitives.NewAction("ADD", nil))
	if got := count(t, s); got != 5 {
		t.Errorf("expected guarded rule applied, got %d", got)
	}

	s.Dispatch(ctx, primitives.NewAction("BLOCKED", nil))
	if got := count(t, s); got != 5 {
		t.Errorf("expected blocked rule skipped, got %d", got)
	}
	if guard.calls != 2 {
		t.Errorf("expected 2 guard evaluations, got %d", guard.calls)
	}
}

func TestEngineGuardFailsClosedWithoutEvaluator(t *testing.T) {
	config := primitives.NewConfigBuilder("guarded").
		Field("count", 0).
		Action("ADD").Add("count", 5).Guard("count < 10").
		Build()

	s, err := NewStore(config)
	if err != nil {
		t.Fatal(err)
	}
	s.Dispatch(context.Background(), primitives.NewAction("ADD", nil))

	if got := count(t, s); got != 0 {
		t.Errorf("expected guarded rule skipped without evaluator, got %d", got)
	}
}

// memPersister is an in-memory Persister for tests.
type memPersister struct {
	snapshots map[string]StoreSnapshot
}

func (p *memPersister) Save(ctx context.Context, snapshot StoreSnapshot) error {
	if p.snapshots == nil {
		p.snapshots = make(map[string]StoreSnapshot)
	}
	p.snapshots[snapshot.StoreID] = snapshot
	return nil
}

func (p *memPersister) Load(ctx context.Context, storeID string) (StoreSnapshot, error) {
	snap, ok := p.snapshots[storeID]
	if !ok {
		return StoreSnapshot{}, ErrNotFound
	}
	return snap, nil
}

func TestEngineSaveRestoreRoundTrip(t *testing.T) {
	persister := &memPersister{}
	ctx := context.Background()

	s, err := NewStore(counterConfig(), WithPersister(persister))
	if err != nil {
		t.Fatal(err)
	}
	s.Dispatch(ctx, primitives.NewAction("ADD", nil))
	s.Dispatch(ctx, primitives.NewAction("ADD", nil))
	if err := s.Save(ctx); err != nil {
		t.Fatal(err)
	}

	restored, err := NewStore(counterConfig(), WithPersister(persister))
	if err != nil {
		t.Fatal(err)
	}
	if err := restored.Restore(ctx); err != nil {
		t.Fatal(err)
	}
	if got := count(t, restored); got != 10 {
		t.Errorf("expected restored count 10, got %d", got)
	}
	if restored.Seq() != 2 {
		t.Errorf("expected restored seq 2, got %d", restored.Seq())
	}
}

func TestEngineRestoreReclampsAndCoerces(t *testing.T) {
	persister := &memPersister{
		snapshots: map[string]StoreSnapshot{
			"counter": {
				StoreID: "counter",
				// float64 mimics a JSON decode; 99 is out of bounds.
				State: map[string]any{"count": float64(99)},
				Seq:   7,
			},
		},
	}

	s, err := NewStore(counterConfig(), WithPersister(persister))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := count(t, s); got != 15 {
		t.Errorf("expected restored count clamped to 15, got %d", got)
	}
}

func TestEngineSaveWithoutPersister(t *testing.T) {
	s, err := NewStore(counterConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background()); err == nil {
		t.Error("expected error saving without a persister")
	}
	if err := s.Restore(context.Background()); err == nil {
		t.Error("expected error restoring without a persister")
	}
}

// capturePublisher records published actions and metadata.
type capturePublisher struct {
	actions []primitives.Action
	metas   []DispatchMetadata
	err     error
}

func (p *capturePublisher) Publish(ctx context.Context, action primitives.Action, meta DispatchMetadata) error {
	p.actions = append(p.actions, action)
	p.metas = append(p.metas, meta)
	return p.err
}

func (p *capturePublisher) Close() error { return nil }

func TestEnginePublishesDispatchMetadata(t *testing.T) {
	publisher := &capturePublisher{}
	s, err := NewStore(counterConfig(), WithPublisher(publisher))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	s.Dispatch(ctx, primitives.NewAction("ADD", nil))
	s.Dispatch(ctx, primitives.NewAction("RESET", nil))

	if len(publisher.actions) != 2 {
		t.Fatalf("expected 2 published actions, got %d", len(publisher.actions))
	}
	if publisher.actions[0].Type != "ADD" || publisher.actions[1].Type != "RESET" {
		t.Errorf("unexpected published actions: %+v", publisher.actions)
	}
	if publisher.metas[0].Seq != 1 || publisher.metas[1].Seq != 2 {
		t.Errorf("unexpected seq values: %+v", publisher.metas)
	}
	if publisher.metas[0].StoreID != "counter" {
		t.Errorf("unexpected store ID: %q", publisher.metas[0].StoreID)
	}
}

func TestEnginePublishErrorDoesNotFailDispatch(t *testing.T) {
	publisher := &capturePublisher{err: errors.New("sink down")}
	s, err := NewStore(counterConfig(), WithPublisher(publisher))
	if err != nil {
		t.Fatal(err)
	}

	s.Dispatch(context.Background(), primitives.NewAction("ADD", nil))
	if got := count(t, s); got != 5 {
		t.Errorf("expected dispatch to succeed despite publish error, got %d", got)
	}
}
