// Action provides the immutable action primitive for store dispatch.
//
// Actions are value types designed for zero-allocation creation via stack
// allocation. Once created, Actions should not be mutated. Use NewAction for
// construction.
//
// # Immutability
//
// Action fields are exported for convenience in read-only contexts, but
// consumers MUST NOT modify them after construction. Violations break the
// pure-transition guarantee.
package primitives

// Action is a tagged instruction describing an intended state change.
type Action struct {
	Type    string `json:"type" yaml:"type"`
	Payload any    `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// NewAction creates and returns a new immutable Action.
//
// This is zero-heap-allocation when Payload is a stack value (small structs,
// primitives). Returns Action by value for stack allocation and copy elision.
func NewAction(actionType string, payload any) Action {
	return Action{
		Type:    actionType,
		Payload: payload,
	}
}
