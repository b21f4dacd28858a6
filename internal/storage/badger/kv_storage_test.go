package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/bobmcallan/wealth-portal/internal/common"
	"github.com/bobmcallan/wealth-portal/internal/config"
	"github.com/bobmcallan/wealth-portal/internal/interfaces"
)

func setupTestDB(t *testing.T) (*BadgerDB, func()) {
	t.Helper()

	dir := t.TempDir()
	logger := common.NewSilentLogger()

	cfg := &config.BadgerConfig{Path: dir}
	db, err := NewBadgerDB(logger, cfg)
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, cleanup
}

func TestKVStorage_SetAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	logger := common.NewSilentLogger()
	kv := NewKVStorage(db, logger)
	ctx := context.Background()

	if err := kv.Set(ctx, "finance_favorites", `["w1","f2"]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := kv.Get(ctx, "finance_favorites")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != `["w1","f2"]` {
		t.Errorf("expected stored favorites, got %s", val)
	}
}

func TestKVStorage_GetNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	logger := common.NewSilentLogger()
	kv := NewKVStorage(db, logger)
	ctx := context.Background()

	_, err := kv.Get(ctx, "nonexistent-key")
	if !errors.Is(err, interfaces.ErrNotFound) {
		t.Errorf("expected ErrNotFound for nonexistent key, got %v", err)
	}
}

func TestKVStorage_Upsert(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	logger := common.NewSilentLogger()
	kv := NewKVStorage(db, logger)
	ctx := context.Background()

	if err := kv.Set(ctx, "key", "value1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Overwrite
	if err := kv.Set(ctx, "key", "value2"); err != nil {
		t.Fatalf("Set (upsert) failed: %v", err)
	}

	val, err := kv.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != "value2" {
		t.Errorf("expected value2, got %s", val)
	}
}

func TestKVStorage_KeysAreIndependent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	kv := NewKVStorage(db, common.NewSilentLogger())
	ctx := context.Background()

	kv.Set(ctx, "finance_favorites:v1", `["w1"]`)
	kv.Set(ctx, "finance_favorites:v2", `["f3"]`)

	for key, want := range map[string]string{
		"finance_favorites:v1": `["w1"]`,
		"finance_favorites:v2": `["f3"]`,
	} {
		got, err := kv.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get %s failed: %v", key, err)
		}
		if got != want {
			t.Errorf("%s: expected %s, got %s", key, want, got)
		}
	}
}

func TestManager_ReopenPersists(t *testing.T) {
	dir := t.TempDir()
	logger := common.NewSilentLogger()
	cfg := &config.BadgerConfig{Path: dir}
	ctx := context.Background()

	m, err := NewManager(logger, cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if err := m.KeyValueStorage().Set(ctx, "finance_favorites:v1", `["w2"]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m2, err := NewManager(logger, cfg)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m2.Close()

	val, err := m2.KeyValueStorage().Get(ctx, "finance_favorites:v1")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if val != `["w2"]` {
		t.Errorf("expected persisted favorites, got %s", val)
	}
}
