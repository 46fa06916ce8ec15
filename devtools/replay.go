package devtools

import (
	"context"
	"fmt"
	"reflect"

	"github.com/comalice/storex/internal/core"
	"github.com/comalice/storex/internal/primitives"
)

// Replay re-executes a journal against a fresh engine built from config and
// returns the final state. Engine options (guard evaluators in particular)
// must match the recording run for the replay to be faithful.
func Replay(ctx context.Context, config primitives.StoreConfig, journal []Entry, opts ...core.Option) (map[string]any, error) {
	store, err := core.NewStore(config, opts...)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	for _, entry := range journal {
		store.Dispatch(ctx, entry.Action)
	}
	return store.GetState(), nil
}

// StateAt replays the first step entries of the journal and returns the
// state at that point. step 0 is the initial state.
func StateAt(ctx context.Context, config primitives.StoreConfig, journal []Entry, step int, opts ...core.Option) (map[string]any, error) {
	if step < 0 || step > len(journal) {
		return nil, fmt.Errorf("replay: step %d out of range [0,%d]", step, len(journal))
	}
	return Replay(ctx, config, journal[:step], opts...)
}

// Verify replays the journal and checks that every recorded snapshot is
// reproduced. A mismatch means the reducer (or a guard) was not
// deterministic between recording and replay.
func Verify(ctx context.Context, config primitives.StoreConfig, journal []Entry, opts ...core.Option) error {
	store, err := core.NewStore(config, opts...)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	for i, entry := range journal {
		store.Dispatch(ctx, entry.Action)
		got := store.GetState()
		if !reflect.DeepEqual(got, entry.State) {
			return fmt.Errorf("verify: step %d (%s): replayed state %v != recorded %v",
				i+1, entry.Action.Type, got, entry.State)
		}
	}
	return nil
}
