// Package redis provides a Redis-backed key-value store so several portal
// instances can share visitor favorites.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobmcallan/wealth-portal/internal/common"
	"github.com/bobmcallan/wealth-portal/internal/config"
	"github.com/bobmcallan/wealth-portal/internal/interfaces"
	goredis "github.com/redis/go-redis/v9"
)

// KVStorage implements interfaces.KeyValueStorage on a Redis client.
// All keys are namespaced with prefix.
type KVStorage struct {
	client goredis.UniversalClient
	prefix string
	logger *common.Logger
}

// NewKVStorage wraps an existing client.
func NewKVStorage(client goredis.UniversalClient, prefix string, logger *common.Logger) *KVStorage {
	return &KVStorage{client: client, prefix: prefix, logger: logger}
}

// Get retrieves a value by key. Missing keys return interfaces.ErrNotFound.
func (s *KVStorage) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", fmt.Errorf("%w: %s", interfaces.ErrNotFound, key)
		}
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

// Set stores a key-value pair without expiry.
func (s *KVStorage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Manager implements interfaces.StorageManager for Redis.
type Manager struct {
	client *goredis.Client
	kv     *KVStorage
}

// NewManager connects to Redis and verifies the connection with PING.
func NewManager(ctx context.Context, logger *common.Logger, cfg *config.RedisConfig) (interfaces.StorageManager, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	logger.Debug().Str("addr", cfg.Addr).Msg("Redis storage manager initialized")

	return &Manager{
		client: client,
		kv:     NewKVStorage(client, cfg.Prefix, logger),
	}, nil
}

// KeyValueStorage returns the KeyValue storage interface.
func (m *Manager) KeyValueStorage() interfaces.KeyValueStorage {
	return m.kv
}

// Close closes the client connection pool.
func (m *Manager) Close() error {
	return m.client.Close()
}
