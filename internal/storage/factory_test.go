package storage

import (
	"context"
	"testing"

	"github.com/bobmcallan/wealth-portal/internal/common"
	"github.com/bobmcallan/wealth-portal/internal/config"
)

func TestNewStorageManager_Badger(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Storage.Badger.Path = t.TempDir()

	m, err := NewStorageManager(context.Background(), common.NewSilentLogger(), cfg)
	if err != nil {
		t.Fatalf("NewStorageManager failed: %v", err)
	}
	defer m.Close()

	if m.KeyValueStorage() == nil {
		t.Error("expected key-value storage")
	}
}

func TestNewStorageManager_Memory(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Storage.Backend = "memory"

	m, err := NewStorageManager(context.Background(), common.NewSilentLogger(), cfg)
	if err != nil {
		t.Fatalf("NewStorageManager failed: %v", err)
	}
	ctx := context.Background()
	if err := m.KeyValueStorage().Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
}

func TestNewStorageManager_UnknownBackend(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Storage.Backend = "etcd"

	if _, err := NewStorageManager(context.Background(), common.NewSilentLogger(), cfg); err == nil {
		t.Error("expected error for unknown backend")
	}
}
