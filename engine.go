package storex

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/storex/internal/core"
	"github.com/comalice/storex/internal/extensibility"
	"github.com/comalice/storex/internal/primitives"
)

// Public surface of the config-driven engine. The engine itself lives under
// internal/; these aliases and constructors are what consumers outside the
// module reach it through.
type (
	// Engine is a declarative, thread-safe store driven by a StoreConfig.
	Engine = core.Store

	// EngineOption configures an Engine at construction.
	EngineOption = core.Option

	// StoreConfig declares an engine's fields, bounds, and per-action rules.
	StoreConfig = primitives.StoreConfig

	// ConfigBuilder assembles a StoreConfig fluently.
	ConfigBuilder = primitives.ConfigBuilder
)

// NewEngine validates config and creates an engine at its initial state.
func NewEngine(config StoreConfig, opts ...EngineOption) (*Engine, error) {
	return core.NewStore(config, opts...)
}

// NewConfigBuilder creates a builder for the given store ID.
func NewConfigBuilder(id string) *ConfigBuilder {
	return primitives.NewConfigBuilder(id)
}

// WithEngineLogger wires structured dispatch logging into an engine.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return core.WithLogger(logger)
}

// WithExprGuards evaluates rule guards with expr-lang expressions over the
// state fields, e.g. `count < 15 && action.type == "ADD"`.
func WithExprGuards() EngineOption {
	return core.WithGuardEvaluator(extensibility.NewExprGuardEvaluator())
}

// WithCELGuards evaluates rule guards with CEL expressions, e.g.
// `state.count < 15`.
func WithCELGuards() EngineOption {
	return core.WithGuardEvaluator(extensibility.NewCELGuardEvaluator())
}

// WithNamedGuards resolves rule guards against native Go functions
// registered by name. Guards naming an unregistered function fail closed.
func WithNamedGuards(guards map[string]func(state map[string]any, action Action) bool) EngineOption {
	e := extensibility.NewDefaultGuardEvaluator()
	for name, fn := range guards {
		e.Register(name, fn)
	}
	return core.WithGuardEvaluator(e)
}

// LoadConfig reads a StoreConfig from a YAML (.yaml/.yml) or JSON (.json)
// file and validates it.
func LoadConfig(path string) (StoreConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StoreConfig{}, fmt.Errorf("read %s: %w", path, err)
	}

	var config StoreConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return StoreConfig{}, fmt.Errorf("yaml unmarshal %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return StoreConfig{}, fmt.Errorf("json unmarshal %s: %w", path, err)
		}
	default:
		return StoreConfig{}, fmt.Errorf("unsupported config extension %q", ext)
	}

	if err := config.Validate(); err != nil {
		return StoreConfig{}, fmt.Errorf("config validation: %w", err)
	}
	return config, nil
}
