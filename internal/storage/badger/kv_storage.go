package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobmcallan/wealth-portal/internal/common"
	"github.com/bobmcallan/wealth-portal/internal/interfaces"
	"github.com/timshannon/badgerhold/v4"
)

// KVEntry represents a key-value pair stored in BadgerDB.
type KVEntry struct {
	Key   string `badgerhold:"key"`
	Value string
}

// KVStorage implements interfaces.KeyValueStorage using BadgerDB.
type KVStorage struct {
	db     *BadgerDB
	logger *common.Logger
}

// NewKVStorage creates a new key-value storage backed by BadgerDB.
func NewKVStorage(db *BadgerDB, logger *common.Logger) *KVStorage {
	return &KVStorage{
		db:     db,
		logger: logger,
	}
}

// Get retrieves a value by key. Missing keys return interfaces.ErrNotFound.
func (s *KVStorage) Get(_ context.Context, key string) (string, error) {
	var entry KVEntry
	err := s.db.Store().Get(key, &entry)
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", interfaces.ErrNotFound, key)
		}
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return entry.Value, nil
}

// Set stores a key-value pair, replacing any previous value.
func (s *KVStorage) Set(_ context.Context, key, value string) error {
	entry := KVEntry{
		Key:   key,
		Value: value,
	}
	if err := s.db.Store().Upsert(key, &entry); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}
