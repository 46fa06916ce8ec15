// Package primitives includes builder helpers for StoreConfig.
package primitives

// ConfigBuilder builds StoreConfig fluently.
type ConfigBuilder struct {
	config *StoreConfig
}

// NewConfigBuilder creates a new ConfigBuilder for the given store ID.
func NewConfigBuilder(id string) *ConfigBuilder {
	return &ConfigBuilder{
		config: &StoreConfig{
			ID:      id,
			Fields:  make(map[string]*FieldConfig),
			Actions: make(map[string][]RuleConfig),
		},
	}
}

// Field declares an integer field with its initial value.
func (b *ConfigBuilder) Field(name string, initial int) *FieldBuilder {
	f := &FieldConfig{Initial: initial}
	b.config.Fields[name] = f
	return &FieldBuilder{field: f, cb: b}
}

// Action starts rule declarations for an action type.
func (b *ConfigBuilder) Action(actionType string) *ActionBuilder {
	return &ActionBuilder{actionType: actionType, cb: b}
}

// Build returns the assembled StoreConfig.
func (b *ConfigBuilder) Build() StoreConfig {
	return *b.config
}

// FieldBuilder configures one field fluently.
type FieldBuilder struct {
	field *FieldConfig
	cb    *ConfigBuilder
}

// Bounds sets the field's clamp interval.
func (fb *FieldBuilder) Bounds(min, max int) *FieldBuilder {
	fb.field.Min = &min
	fb.field.Max = &max
	return fb
}

// Min sets only the lower bound.
func (fb *FieldBuilder) Min(min int) *FieldBuilder {
	fb.field.Min = &min
	return fb
}

// Max sets only the upper bound.
func (fb *FieldBuilder) Max(max int) *FieldBuilder {
	fb.field.Max = &max
	return fb
}

// Field declares a sibling field.
func (fb *FieldBuilder) Field(name string, initial int) *FieldBuilder {
	return fb.cb.Field(name, initial)
}

// Action hands back to action declarations.
func (fb *FieldBuilder) Action(actionType string) *ActionBuilder {
	return fb.cb.Action(actionType)
}

// Build returns the assembled StoreConfig.
func (fb *FieldBuilder) Build() StoreConfig {
	return fb.cb.Build()
}

// ActionBuilder configures the rules of one action type fluently.
type ActionBuilder struct {
	actionType string
	cb         *ConfigBuilder
	lastRule   int // index of last appended rule, for Guard()
}

func (ab *ActionBuilder) appendRule(rule RuleConfig) *ActionBuilder {
	rules := append(ab.cb.config.Actions[ab.actionType], rule)
	ab.cb.config.Actions[ab.actionType] = rules
	ab.lastRule = len(rules) - 1
	return ab
}

// Add appends an add rule.
func (ab *ActionBuilder) Add(field string, amount int) *ActionBuilder {
	return ab.appendRule(RuleConfig{Field: field, Op: OpAdd, Amount: amount})
}

// Subtract appends a subtract rule.
func (ab *ActionBuilder) Subtract(field string, amount int) *ActionBuilder {
	return ab.appendRule(RuleConfig{Field: field, Op: OpSubtract, Amount: amount})
}

// Set appends a set rule.
func (ab *ActionBuilder) Set(field string, value int) *ActionBuilder {
	return ab.appendRule(RuleConfig{Field: field, Op: OpSet, Amount: value})
}

// Guard attaches a guard expression to the most recently appended rule.
func (ab *ActionBuilder) Guard(expr string) *ActionBuilder {
	rules := ab.cb.config.Actions[ab.actionType]
	if len(rules) > 0 {
		rules[ab.lastRule].Guard = expr
	}
	return ab
}

// Action starts rule declarations for another action type.
func (ab *ActionBuilder) Action(actionType string) *ActionBuilder {
	return ab.cb.Action(actionType)
}

// Build returns the assembled StoreConfig.
func (ab *ActionBuilder) Build() StoreConfig {
	return ab.cb.Build()
}
