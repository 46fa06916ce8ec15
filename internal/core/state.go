package core

import "sync"

// stateMap provides thread-safe storage for the engine's state fields.
type stateMap struct {
	mu   sync.RWMutex
	data map[string]any
}

func newStateMap(initial map[string]any) *stateMap {
	data := make(map[string]any, len(initial))
	for k, v := range initial {
		data[k] = v
	}
	return &stateMap{data: data}
}

// Get retrieves a field value. Returns nil if the field does not exist.
func (s *stateMap) Get(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key]
}

// Snapshot returns a defensive copy of all fields; modifications to the
// returned map do not affect the state.
func (s *stateMap) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]any, len(s.data))
	for k, v := range s.data {
		snapshot[k] = v
	}
	return snapshot
}

// LoadAll atomically replaces all fields. Used by dispatch and restore.
func (s *stateMap) LoadAll(data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
}
