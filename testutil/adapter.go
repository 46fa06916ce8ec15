package testutil

import (
	"context"

	"github.com/comalice/storex"
)

// StoreAdapter provides a common interface for the generic store and the
// config-driven engine. This allows running the same property suite on both
// implementations.
type StoreAdapter interface {
	Dispatch(actionType string)
	Count() int
	Subscribe(fn func()) func()
}

// GenericAdapter wraps the generic Store with the counter reducer.
type GenericAdapter struct {
	store *storex.Store[storex.CounterState]
}

// NewGenericAdapter creates an adapter over a fresh generic counter store.
func NewGenericAdapter() *GenericAdapter {
	return &GenericAdapter{
		store: storex.New(storex.CounterReducer, storex.CounterState{}),
	}
}

func (a *GenericAdapter) Dispatch(actionType string) {
	a.store.Dispatch(storex.NewAction(actionType, nil))
}

func (a *GenericAdapter) Count() int {
	return a.store.GetState().Count
}

func (a *GenericAdapter) Subscribe(fn func()) func() {
	return a.store.Subscribe(fn)
}

// EngineAdapter wraps the config-driven engine with an equivalent config.
type EngineAdapter struct {
	engine *storex.Engine
}

// NewEngineAdapter creates an adapter over a fresh engine counter store.
func NewEngineAdapter() (*EngineAdapter, error) {
	config := storex.NewConfigBuilder("counter").
		Field("count", storex.CounterMin).Bounds(storex.CounterMin, storex.CounterMax).
		Action(storex.ActionAdd).Add("count", storex.CounterStep).
		Action(storex.ActionSubtract).Subtract("count", storex.CounterStep).
		Action(storex.ActionReset).Set("count", storex.CounterMin).
		Build()

	engine, err := storex.NewEngine(config)
	if err != nil {
		return nil, err
	}
	return &EngineAdapter{engine: engine}, nil
}

func (a *EngineAdapter) Dispatch(actionType string) {
	a.engine.Dispatch(context.Background(), storex.NewAction(actionType, nil))
}

func (a *EngineAdapter) Count() int {
	if v, ok := a.engine.GetState()["count"].(int); ok {
		return v
	}
	return -1
}

func (a *EngineAdapter) Subscribe(fn func()) func() {
	return a.engine.Subscribe(fn)
}
