package store

import (
	"context"
	"sync"
)

// MemoryStore implements Store with an in-process map. Sessions do not
// survive restarts; it backs tests and single-node development runs.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns a copy of the stored blob so callers can never mutate the
// committed value in place.
func (m *MemoryStore) Get(_ context.Context, channelID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[channelID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put records a copy of data for channelID.
func (m *MemoryStore) Put(_ context.Context, channelID string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[channelID] = stored
	return nil
}

// Delete removes the blob for channelID.
func (m *MemoryStore) Delete(_ context.Context, channelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, channelID)
	return nil
}

// Count returns the number of stored sessions.
func (m *MemoryStore) Count(_ context.Context) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
