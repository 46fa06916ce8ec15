package core

import (
	"github.com/comalice/storex/internal/primitives"
)

// reduce applies the configured rules for action.Type to a copy of state and
// returns the next state. Unknown action types return the state unchanged.
// Every rule application is followed by a clamp to the field's bounds, so no
// rule order can escape them. Guarded rules consult the guard evaluator and
// fail closed: a false guard, a missing evaluator, or an evaluator error all
// skip the rule without failing the dispatch.
func (s *Store) reduce(state map[string]any, action primitives.Action) map[string]any {
	rules, ok := s.config.Actions[action.Type]
	if !ok {
		return state
	}

	next := make(map[string]any, len(state))
	for k, v := range state {
		next[k] = v
	}

	for _, rule := range rules {
		if rule.Guard != "" {
			if s.guardEval == nil || !s.guardEval.Eval(next, rule.Guard, action) {
				continue
			}
		}

		field := s.config.Fields[rule.Field]
		cur := coerceInt(next[rule.Field], field.Initial)

		var v int
		switch rule.Op {
		case primitives.OpAdd:
			v = cur + rule.Amount
		case primitives.OpSubtract:
			v = cur - rule.Amount
		case primitives.OpSet:
			v = rule.Amount
		default:
			continue
		}

		next[rule.Field] = field.ClampValue(v)
	}

	return next
}

// coerceInt normalizes a state value to int. JSON and YAML decoding hand
// numbers back as float64 or int64 depending on the codec.
func coerceInt(v any, fallback int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return fallback
	}
}
