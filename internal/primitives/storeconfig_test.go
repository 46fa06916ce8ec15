package primitives

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func intPtr(v int) *int { return &v }

func TestStoreConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *StoreConfig
		wantErr bool
	}{
		{
			name: "minimal valid",
			config: &StoreConfig{
				ID: "counter",
				Fields: map[string]*FieldConfig{
					"count": {Initial: 0},
				},
			},
			wantErr: false,
		},
		{
			name: "missing store ID",
			config: &StoreConfig{
				Fields: map[string]*FieldConfig{
					"count": {Initial: 0},
				},
			},
			wantErr: true,
		},
		{
			name:    "no fields",
			config:  &StoreConfig{ID: "counter"},
			wantErr: true,
		},
		{
			name: "bounded valid with rules",
			config: &StoreConfig{
				ID: "counter",
				Fields: map[string]*FieldConfig{
					"count": {Initial: 0, Min: intPtr(0), Max: intPtr(15)},
				},
				Actions: map[string][]RuleConfig{
					"ADD":      {{Field: "count", Op: OpAdd, Amount: 5}},
					"SUBTRACT": {{Field: "count", Op: OpSubtract, Amount: 5}},
					"RESET":    {{Field: "count", Op: OpSet, Amount: 0}},
				},
			},
			wantErr: false,
		},
		{
			name: "rule references unknown field",
			config: &StoreConfig{
				ID: "counter",
				Fields: map[string]*FieldConfig{
					"count": {Initial: 0},
				},
				Actions: map[string][]RuleConfig{
					"ADD": {{Field: "missing", Op: OpAdd, Amount: 5}},
				},
			},
			wantErr: true,
		},
		{
			name: "invalid op",
			config: &StoreConfig{
				ID: "counter",
				Fields: map[string]*FieldConfig{
					"count": {Initial: 0},
				},
				Actions: map[string][]RuleConfig{
					"ADD": {{Field: "count", Op: "multiply", Amount: 2}},
				},
			},
			wantErr: true,
		},
		{
			name: "min above max",
			config: &StoreConfig{
				ID: "counter",
				Fields: map[string]*FieldConfig{
					"count": {Initial: 0, Min: intPtr(10), Max: intPtr(5)},
				},
			},
			wantErr: true,
		},
		{
			name: "initial outside bounds",
			config: &StoreConfig{
				ID: "counter",
				Fields: map[string]*FieldConfig{
					"count": {Initial: 20, Min: intPtr(0), Max: intPtr(15)},
				},
			},
			wantErr: true,
		},
		{
			name: "nil field",
			config: &StoreConfig{
				ID: "counter",
				Fields: map[string]*FieldConfig{
					"count": nil,
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFieldClampValue(t *testing.T) {
	bounded := &FieldConfig{Initial: 0, Min: intPtr(0), Max: intPtr(15)}
	if got := bounded.ClampValue(20); got != 15 {
		t.Errorf("expected clamp to 15, got %d", got)
	}
	if got := bounded.ClampValue(-5); got != 0 {
		t.Errorf("expected clamp to 0, got %d", got)
	}
	if got := bounded.ClampValue(7); got != 7 {
		t.Errorf("expected 7 untouched, got %d", got)
	}

	open := &FieldConfig{Initial: 0}
	if got := open.ClampValue(-100); got != -100 {
		t.Errorf("expected unbounded field untouched, got %d", got)
	}
}

func TestInitialState(t *testing.T) {
	config := &StoreConfig{
		ID: "counter",
		Fields: map[string]*FieldConfig{
			"count": {Initial: 3},
			"total": {Initial: 0},
		},
	}
	state := config.InitialState()
	if len(state) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(state))
	}
	if state["count"] != 3 {
		t.Errorf("expected count=3, got %v", state["count"])
	}
	if state["total"] != 0 {
		t.Errorf("expected total=0, got %v", state["total"])
	}
}

func TestStoreConfigYAMLRoundTrip(t *testing.T) {
	src := `
id: counter
fields:
  count:
    initial: 0
    min: 0
    max: 15
actions:
  ADD:
    - field: count
      op: add
      amount: 5
  SUBTRACT:
    - field: count
      op: subtract
      amount: 5
  RESET:
    - field: count
      op: set
      amount: 0
`
	var config StoreConfig
	if err := yaml.Unmarshal([]byte(src), &config); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	if err := config.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if config.Fields["count"].Max == nil || *config.Fields["count"].Max != 15 {
		t.Errorf("expected max 15, got %v", config.Fields["count"].Max)
	}
	if len(config.Actions["ADD"]) != 1 || config.Actions["ADD"][0].Op != OpAdd {
		t.Errorf("unexpected ADD rules: %+v", config.Actions["ADD"])
	}
}

func TestComputeVersion(t *testing.T) {
	config := &StoreConfig{
		ID: "counter",
		Fields: map[string]*FieldConfig{
			"count": {Initial: 0},
		},
	}
	v := ComputeVersion(config)
	if v == "" {
		t.Fatal("expected non-empty version")
	}

	config.Version = "v1.2.3"
	if got := ComputeVersion(config); got != "v1.2.3" {
		t.Errorf("expected explicit version to win, got %q", got)
	}
}
