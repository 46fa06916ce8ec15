// Package core defines the Registry interface for versioned snapshot history.
package core

import (
	"context"
	"errors"
	"time"
)

// Registry manages versioned snapshots of running Store instances.
type Registry interface {
	// Register saves a snapshot under the given version.
	Register(ctx context.Context, storeID, version string, snapshot StoreSnapshot) error

	// Latest returns the most recent snapshot for storeID.
	Latest(ctx context.Context, storeID string) (StoreSnapshot, error)

	// Version returns the snapshot for a specific version.
	Version(ctx context.Context, storeID, version string) (StoreSnapshot, error)

	// ListVersions returns versions for storeID, newest first.
	ListVersions(ctx context.Context, storeID string) ([]string, error)

	// ListStores returns all store IDs.
	ListStores(ctx context.Context) ([]string, error)
}

var (
	ErrNotFound = errors.New("version or store not found")
	ErrExists   = errors.New("version already exists")
)

// StoreSnapshotVersion annotates a snapshot with its registry version.
type StoreSnapshotVersion struct {
	StoreSnapshot
	Version   string    `json:"version" yaml:"version"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
