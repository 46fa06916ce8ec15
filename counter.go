package storex

import "golang.org/x/exp/constraints"

// Counter action types.
const (
	ActionAdd      = "ADD"
	ActionSubtract = "SUBTRACT"
	ActionReset    = "RESET"
)

// Counter bounds and step size.
const (
	CounterMin  = 0
	CounterMax  = 15
	CounterStep = 5
)

// CounterState is the reference domain state: a single bounded count.
type CounterState struct {
	Count int
}

// CounterReducer steps a bounded counter. Add and Subtract move the count by
// CounterStep, clamped to [CounterMin, CounterMax]; Reset returns it to
// CounterMin. Unknown action types leave the state unchanged.
func CounterReducer(state CounterState, action Action) CounterState {
	switch action.Type {
	case ActionAdd:
		return CounterState{Count: Clamp(state.Count+CounterStep, CounterMin, CounterMax)}
	case ActionSubtract:
		return CounterState{Count: Clamp(state.Count-CounterStep, CounterMin, CounterMax)}
	case ActionReset:
		return CounterState{Count: CounterMin}
	default:
		return state
	}
}

// Clamp bounds v to the closed interval [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
