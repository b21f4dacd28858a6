package storage

import (
	"context"
	"fmt"

	"github.com/bobmcallan/wealth-portal/internal/common"
	"github.com/bobmcallan/wealth-portal/internal/config"
	"github.com/bobmcallan/wealth-portal/internal/interfaces"
	"github.com/bobmcallan/wealth-portal/internal/storage/badger"
	"github.com/bobmcallan/wealth-portal/internal/storage/memory"
	"github.com/bobmcallan/wealth-portal/internal/storage/redis"
)

// NewStorageManager creates a storage manager for the configured backend.
func NewStorageManager(ctx context.Context, logger *common.Logger, cfg *config.Config) (interfaces.StorageManager, error) {
	switch cfg.Storage.Backend {
	case "", "badger":
		return badger.NewManager(logger, &cfg.Storage.Badger)
	case "redis":
		return redis.NewManager(ctx, logger, &cfg.Storage.Redis)
	case "memory":
		return memory.NewManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
