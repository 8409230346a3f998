// Package store provides settings.Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/bonus-engine/settings"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu     sync.RWMutex
	values map[settings.Key]string
}

// Compile-time check that Memory implements settings.Store
var _ settings.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{values: make(map[settings.Key]string)}
}

func (m *Memory) Load(_ context.Context, key settings.Key) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return "", settings.ErrNotFound
	}
	return value, nil
}

func (m *Memory) Save(_ context.Context, key settings.Key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key settings.Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range settings.Keys() {
		delete(m.values, key)
	}
	return nil
}
