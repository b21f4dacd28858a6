package interfaces

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KeyValueStorage.Get when the key does not exist.
var ErrNotFound = errors.New("key not found")

// StorageManager provides access to domain-specific storage interfaces.
// Implementations can be swapped (BadgerDB, Redis, in-memory).
type StorageManager interface {
	KeyValueStorage() KeyValueStorage
	Close() error
}

// KeyValueStorage provides basic key-value operations.
type KeyValueStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
