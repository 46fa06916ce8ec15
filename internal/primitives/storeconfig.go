// Package primitives defines the declarative configuration for the store
// engine.
//
// StoreConfig represents the top-level configuration of a store, containing
// the store ID, the integer fields it holds (with optional clamp bounds),
// and the rules applied per action type. Validation ensures ID/field
// presence, rule-target existence, valid operations, and sane bounds.
package primitives

import (
	"errors"
	"fmt"
)

// Op is the arithmetic operation a rule applies to a field.
type Op string

const (
	OpAdd      Op = "add"
	OpSubtract Op = "subtract"
	OpSet      Op = "set"
)

// FieldConfig declares one integer field of the store state.
// Nil Min/Max leave that side unbounded.
type FieldConfig struct {
	Initial int  `json:"initial" yaml:"initial"`
	Min     *int `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *int `json:"max,omitempty" yaml:"max,omitempty"`
}

// RuleConfig is one transition rule: when its action type is dispatched,
// apply Op with Amount to Field. An optional Guard expression must evaluate
// truthy for the rule to apply; a failing or false guard skips the rule.
type RuleConfig struct {
	Field  string `json:"field" yaml:"field"`
	Op     Op     `json:"op" yaml:"op"`
	Amount int    `json:"amount" yaml:"amount"`
	Guard  string `json:"guard,omitempty" yaml:"guard,omitempty"`
}

// StoreConfig defines the complete store configuration.
type StoreConfig struct {
	Version string                  `json:"version,omitempty" yaml:"version,omitempty"`
	ID      string                  `json:"id" yaml:"id"`
	Fields  map[string]*FieldConfig `json:"fields" yaml:"fields"`
	Actions map[string][]RuleConfig `json:"actions" yaml:"actions"`
}

// Validate validates the entire store configuration:
// - Non-empty ID
// - At least one field, each with Min <= Max and Initial within bounds
// - Every rule references a declared field and a valid Op
func (c *StoreConfig) Validate() error {
	if c.ID == "" {
		return errors.New("store ID is required")
	}
	if len(c.Fields) == 0 {
		return errors.New("fields map is required and cannot be empty")
	}

	for name, field := range c.Fields {
		if field == nil {
			return fmt.Errorf("field %q is nil", name)
		}
		if err := field.validate(); err != nil {
			return fmt.Errorf("field %q validation failed: %w", name, err)
		}
	}

	for actionType, rules := range c.Actions {
		if actionType == "" {
			return errors.New("action type cannot be empty")
		}
		for i, rule := range rules {
			if _, exists := c.Fields[rule.Field]; !exists {
				return fmt.Errorf("invalid rule field %q (action %q, rule %d)", rule.Field, actionType, i)
			}
			switch rule.Op {
			case OpAdd, OpSubtract, OpSet:
			default:
				return fmt.Errorf("invalid op %q (action %q, rule %d)", rule.Op, actionType, i)
			}
		}
	}

	return nil
}

func (f *FieldConfig) validate() error {
	if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
		return fmt.Errorf("min %d greater than max %d", *f.Min, *f.Max)
	}
	if f.Min != nil && f.Initial < *f.Min {
		return fmt.Errorf("initial %d below min %d", f.Initial, *f.Min)
	}
	if f.Max != nil && f.Initial > *f.Max {
		return fmt.Errorf("initial %d above max %d", f.Initial, *f.Max)
	}
	return nil
}

// ClampValue bounds v to the field's declared interval.
func (f *FieldConfig) ClampValue(v int) int {
	if f.Min != nil && v < *f.Min {
		return *f.Min
	}
	if f.Max != nil && v > *f.Max {
		return *f.Max
	}
	return v
}

// InitialState builds the initial state map from the declared fields.
func (c *StoreConfig) InitialState() map[string]any {
	state := make(map[string]any, len(c.Fields))
	for name, field := range c.Fields {
		state[name] = field.Initial
	}
	return state
}
