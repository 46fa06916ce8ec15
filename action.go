package storex

import "github.com/comalice/storex/internal/primitives"

// Action is a tagged instruction describing an intended state change.
// The same Action value type flows through the generic Store and the
// config-driven engine.
type Action = primitives.Action

// NewAction creates and returns a new Action.
func NewAction(actionType string, payload any) Action {
	return primitives.NewAction(actionType, payload)
}
