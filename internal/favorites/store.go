// Package favorites persists a visitor's favorite product ids in a
// key-value store.
package favorites

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bobmcallan/wealth-portal/internal/common"
	"github.com/bobmcallan/wealth-portal/internal/interfaces"
	"github.com/tidwall/gjson"
)

// StorageKey is the fixed key favorites are stored under.
const StorageKey = "finance_favorites"

// Key returns the storage key for a visitor. An empty visitor uses the bare
// StorageKey.
func Key(visitorID string) string {
	if visitorID == "" {
		return StorageKey
	}
	return StorageKey + ":" + visitorID
}

// KeyValue is the storage capability the store needs.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Store reads and writes one favorites set.
type Store struct {
	mu     sync.Mutex
	kv     KeyValue
	key    string
	logger *common.Logger
}

// NewStore creates a store persisting under key.
func NewStore(kv KeyValue, key string, logger *common.Logger) *Store {
	return &Store{kv: kv, key: key, logger: logger}
}

// Load returns the persisted set. Missing or malformed data yields an empty
// set; failures are logged, never returned.
func (s *Store) Load(ctx context.Context) Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) Set {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) && s.logger != nil {
			s.logger.Warn().Str("key", s.key).Str("error", err.Error()).Msg("failed to read favorites")
		}
		return Set{}
	}

	set, err := Parse(raw)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn().Str("key", s.key).Str("error", err.Error()).Msg("failed to parse favorites")
		}
		return Set{}
	}
	return set
}

// Toggle flips id in the persisted set and writes the whole new set back.
// If the write fails the previous set is returned with the error.
func (s *Store) Toggle(ctx context.Context, id string) (Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.load(ctx)
	next := current.Toggle(id)

	data, err := next.MarshalJSON()
	if err != nil {
		return current, fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return current, fmt.Errorf("failed to save favorites: %w", err)
	}
	return next, nil
}

// Parse decodes a persisted favorites value: a JSON array of strings.
// Duplicate ids are dropped.
func Parse(raw string) (Set, error) {
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("favorites value is not valid JSON")
	}
	result := gjson.Parse(raw)
	if !result.IsArray() {
		return nil, fmt.Errorf("favorites value is not a JSON array")
	}

	set := Set{}
	var bad error
	result.ForEach(func(_, item gjson.Result) bool {
		if item.Type != gjson.String {
			bad = fmt.Errorf("favorites entry %s is not a string", item.Raw)
			return false
		}
		if !set.Contains(item.Str) {
			set = append(set, item.Str)
		}
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return set, nil
}
