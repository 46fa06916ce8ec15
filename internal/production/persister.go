// Package production provides production integrations for the store engine:
// snapshot persistence, dispatch publishing, and versioned snapshot history.

package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/comalice/storex/internal/core"
)

// JSONPersister is a file-based persister using JSON serialization.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, snapshot core.StoreSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snapshot.StoreID+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

func (p *JSONPersister) Load(ctx context.Context, storeID string) (core.StoreSnapshot, error) {
	fn := filepath.Join(p.dir, storeID+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			var empty core.StoreSnapshot
			return empty, fmt.Errorf("store %q: %w", storeID, os.ErrNotExist)
		}
		return core.StoreSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot core.StoreSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return core.StoreSnapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snapshot.StoreID = storeID // Ensure ID

	return snapshot, nil
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, snapshot core.StoreSnapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snapshot.StoreID+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

func (p *YAMLPersister) Load(ctx context.Context, storeID string) (core.StoreSnapshot, error) {
	fn := filepath.Join(p.dir, storeID+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			var empty core.StoreSnapshot
			return empty, fmt.Errorf("store %q: %w", storeID, os.ErrNotExist)
		}
		return core.StoreSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot core.StoreSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return core.StoreSnapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snapshot.StoreID = storeID // Ensure ID
	if err := snapshot.Config.Validate(); err != nil {
		return core.StoreSnapshot{}, fmt.Errorf("config validation after load: %w", err)
	}

	return snapshot, nil
}
