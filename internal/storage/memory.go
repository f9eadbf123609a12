package storage

import (
	"context"
	"slices"
	"sync"
)

// MemoryKV keeps values in a map. It is the default backend and the one tests use.
type MemoryKV struct {
	mu     sync.RWMutex
	data   map[string][]byte
	writes int
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return slices.Clone(v), nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = slices.Clone(value)
	m.writes++
	return nil
}

func (m *MemoryKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	m.writes++
	return nil
}

// Writes counts Set and Remove calls.
func (m *MemoryKV) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
