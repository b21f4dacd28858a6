// Package memory provides an in-process key-value store for tests and
// single-instance deployments that do not need favorites to survive restarts.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bobmcallan/wealth-portal/internal/interfaces"
)

// KVStorage implements interfaces.KeyValueStorage with a guarded map.
type KVStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewKVStorage creates an empty in-memory store.
func NewKVStorage() *KVStorage {
	return &KVStorage{items: make(map[string]string)}
}

// Get retrieves a value by key. Missing keys return interfaces.ErrNotFound.
func (s *KVStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", interfaces.ErrNotFound, key)
	}
	return v, nil
}

// Set stores a key-value pair.
func (s *KVStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.items[key] = value
	s.mu.Unlock()
	return nil
}

// Manager implements interfaces.StorageManager over a KVStorage.
type Manager struct {
	kv *KVStorage
}

// NewManager creates a manager with an empty store.
func NewManager() *Manager {
	return &Manager{kv: NewKVStorage()}
}

// KeyValueStorage returns the KeyValue storage interface.
func (m *Manager) KeyValueStorage() interfaces.KeyValueStorage {
	return m.kv
}

// Close is a no-op.
func (m *Manager) Close() error {
	return nil
}
