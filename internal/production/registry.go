package production

import (
	"context"
	"sync"

	"github.com/comalice/storex/internal/core"
)

// MemoryRegistry is an in-memory core.Registry keeping versioned snapshots
// per store, newest first.
type MemoryRegistry struct {
	mu     sync.RWMutex
	stores map[string][]core.StoreSnapshotVersion
}

// NewMemoryRegistry creates an empty MemoryRegistry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		stores: make(map[string][]core.StoreSnapshotVersion),
	}
}

func (r *MemoryRegistry) Register(ctx context.Context, storeID, version string, snapshot core.StoreSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range r.stores[storeID] {
		if v.Version == version {
			return core.ErrExists
		}
	}

	entry := core.StoreSnapshotVersion{
		StoreSnapshot: snapshot,
		Version:       version,
		Timestamp:     snapshot.Timestamp,
	}
	// Prepend: newest first.
	r.stores[storeID] = append([]core.StoreSnapshotVersion{entry}, r.stores[storeID]...)
	return nil
}

func (r *MemoryRegistry) Latest(ctx context.Context, storeID string) (core.StoreSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.stores[storeID]
	if len(versions) == 0 {
		return core.StoreSnapshot{}, core.ErrNotFound
	}
	return versions[0].StoreSnapshot, nil
}

func (r *MemoryRegistry) Version(ctx context.Context, storeID, version string) (core.StoreSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.stores[storeID] {
		if v.Version == version {
			return v.StoreSnapshot, nil
		}
	}
	return core.StoreSnapshot{}, core.ErrNotFound
}

func (r *MemoryRegistry) ListVersions(ctx context.Context, storeID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.stores[storeID]
	if len(versions) == 0 {
		return nil, core.ErrNotFound
	}
	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = v.Version
	}
	return out, nil
}

func (r *MemoryRegistry) ListStores(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.stores))
	for id := range r.stores {
		out = append(out, id)
	}
	return out, nil
}
