package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store. A positive Quota caps the size of a
// single value; larger writes fail with ErrStorageUnavailable.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
	Quota int
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if m.Quota > 0 && len(value) > m.Quota {
		return fmt.Errorf("%w: %d bytes exceeds quota of %d", ErrStorageUnavailable, len(value), m.Quota)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.items[key] = v
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Len returns the number of stored keys
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
