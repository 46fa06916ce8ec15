// Package extensibility provides pluggable implementations of the core
// engine's component interfaces: guard evaluators, dispatch wrappers, and
// action sources.
package extensibility

import (
	"github.com/comalice/storex/internal/primitives"
)

// GuardFunc is a registered native guard.
type GuardFunc func(state map[string]any, action primitives.Action) bool

// DefaultGuardEvaluator resolves guard strings against a registry of named
// native guards. Unregistered guards fail closed.
type DefaultGuardEvaluator struct {
	guards map[string]GuardFunc
}

// NewDefaultGuardEvaluator creates an evaluator with no registered guards.
func NewDefaultGuardEvaluator() *DefaultGuardEvaluator {
	return &DefaultGuardEvaluator{guards: make(map[string]GuardFunc)}
}

// Register binds a guard name to a native function. Later registrations
// replace earlier ones.
func (e *DefaultGuardEvaluator) Register(name string, fn GuardFunc) {
	e.guards[name] = fn
}

// Eval evaluates a guard by name.
func (e *DefaultGuardEvaluator) Eval(state map[string]any, guard string, action primitives.Action) bool {
	if guard == "" {
		return true
	}
	fn, ok := e.guards[guard]
	if !ok {
		return false // unregistered guards fail closed
	}
	return fn(state, action)
}

// actionEnv is the evaluator-facing view of a dispatched action.
func actionEnv(action primitives.Action) map[string]any {
	return map[string]any{
		"type":    action.Type,
		"payload": action.Payload,
	}
}
