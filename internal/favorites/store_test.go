package favorites

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bobmcallan/wealth-portal/internal/common"
	"github.com/bobmcallan/wealth-portal/internal/storage/memory"
)

// failingKV fails every write.
type failingKV struct {
	*memory.KVStorage
}

func (f failingKV) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

func TestSet_Toggle(t *testing.T) {
	s := Set{"a", "b"}

	added := s.Toggle("c")
	if !added.Contains("c") || len(added) != 3 {
		t.Errorf("expected c to be added, got %v", added)
	}
	if s.Contains("c") {
		t.Error("Toggle must not modify the receiver")
	}

	removed := s.Toggle("a")
	if removed.Contains("a") || len(removed) != 1 {
		t.Errorf("expected a to be removed, got %v", removed)
	}
}

func TestSet_DoubleToggleIsIdentity(t *testing.T) {
	sets := []Set{{}, {"a"}, {"a", "b", "c"}}
	for _, s := range sets {
		for _, id := range []string{"a", "b", "z"} {
			if got := s.Toggle(id).Toggle(id); !got.Equal(s) {
				t.Errorf("toggle(toggle(%v, %s)) = %v", s, id, got)
			}
		}
	}
}

func TestSet_MarshalNilAsArray(t *testing.T) {
	var s Set
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("expected [], got %s", data)
	}
}

func TestParse(t *testing.T) {
	set, err := Parse(`["w1","f2","w1"]`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(set) != 2 || set[0] != "w1" || set[1] != "f2" {
		t.Errorf("expected [w1 f2], got %v", set)
	}

	for _, bad := range []string{`{"a":1}`, `not json`, `["a",1]`, `"w1"`, ``} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	store := NewStore(memory.NewKVStorage(), StorageKey, common.NewSilentLogger())

	set := store.Load(context.Background())
	if len(set) != 0 {
		t.Errorf("expected empty set, got %v", set)
	}
}

func TestStore_LoadMalformedIsEmpty(t *testing.T) {
	kv := memory.NewKVStorage()
	ctx := context.Background()
	kv.Set(ctx, StorageKey, `{broken`)

	store := NewStore(kv, StorageKey, common.NewSilentLogger())
	set := store.Load(ctx)
	if len(set) != 0 {
		t.Errorf("expected empty set for malformed data, got %v", set)
	}
}

func TestStore_TogglePersists(t *testing.T) {
	kv := memory.NewKVStorage()
	ctx := context.Background()
	store := NewStore(kv, StorageKey, common.NewSilentLogger())

	set, err := store.Toggle(ctx, "a")
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !set.Contains("a") {
		t.Errorf("expected a in set, got %v", set)
	}

	raw, err := kv.Get(ctx, StorageKey)
	if err != nil {
		t.Fatalf("expected persisted value: %v", err)
	}
	if raw != `["a"]` {
		t.Errorf("expected [\"a\"], got %s", raw)
	}

	// A fresh store over the same KV sees the write
	reloaded := NewStore(kv, StorageKey, common.NewSilentLogger()).Load(ctx)
	if !reloaded.Equal(Set{"a"}) {
		t.Errorf("expected reloaded set [a], got %v", reloaded)
	}

	set, err = store.Toggle(ctx, "a")
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if len(set) != 0 {
		t.Errorf("expected empty set after second toggle, got %v", set)
	}
	raw, _ = kv.Get(ctx, StorageKey)
	if raw != `[]` {
		t.Errorf("expected [] persisted, got %s", raw)
	}
}

func TestStore_ToggleRecoversFromMalformed(t *testing.T) {
	kv := memory.NewKVStorage()
	ctx := context.Background()
	kv.Set(ctx, StorageKey, `42`)

	store := NewStore(kv, StorageKey, common.NewSilentLogger())
	set, err := store.Toggle(ctx, "w1")
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !set.Equal(Set{"w1"}) {
		t.Errorf("expected [w1], got %v", set)
	}
}

func TestStore_ToggleWriteFailureKeepsPrevious(t *testing.T) {
	kv := failingKV{memory.NewKVStorage()}
	ctx := context.Background()
	kv.KVStorage.Set(ctx, StorageKey, `["x"]`)

	store := NewStore(kv, StorageKey, common.NewSilentLogger())
	set, err := store.Toggle(ctx, "y")
	if err == nil {
		t.Fatal("expected write error")
	}
	if !set.Equal(Set{"x"}) {
		t.Errorf("expected previous set [x], got %v", set)
	}
}

func TestManager_ScopesByVisitor(t *testing.T) {
	kv := memory.NewKVStorage()
	ctx := context.Background()
	m := NewManager(kv, common.NewSilentLogger())

	if _, err := m.For("alice").Toggle(ctx, "w1"); err != nil {
		t.Fatal(err)
	}
	if got := m.For("bob").Load(ctx); len(got) != 0 {
		t.Errorf("expected bob to have no favorites, got %v", got)
	}
	if got := m.For("alice").Load(ctx); !got.Equal(Set{"w1"}) {
		t.Errorf("expected alice to have [w1], got %v", got)
	}
	if m.For("alice") != m.For("alice") {
		t.Error("expected the same store for the same visitor")
	}
	if _, err := kv.Get(ctx, "finance_favorites:alice"); err != nil {
		t.Errorf("expected visitor-scoped key: %v", err)
	}
}

func TestManager_ConcurrentTogglesSerialise(t *testing.T) {
	kv := memory.NewKVStorage()
	ctx := context.Background()
	m := NewManager(kv, common.NewSilentLogger())

	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			m.For("v").Toggle(ctx, id)
		}(id)
	}
	wg.Wait()

	got := m.For("v").Load(ctx)
	if len(got) != len(ids) {
		t.Errorf("expected %d favorites, got %v", len(ids), got)
	}
}

func TestKey(t *testing.T) {
	if Key("") != "finance_favorites" {
		t.Errorf("unexpected bare key %q", Key(""))
	}
	if Key("abc") != "finance_favorites:abc" {
		t.Errorf("unexpected visitor key %q", Key("abc"))
	}
}
