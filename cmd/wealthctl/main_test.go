package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/wealth-portal/internal/catalog"
	"github.com/bobmcallan/wealth-portal/internal/share"
)

// setup points the globals at a fresh config using embedded data and a
// temporary badger store.
func setup(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "wealth-portal.toml")
	body := fmt.Sprintf(`
[data]
source = "embedded"

[storage]
backend = "badger"

[storage.badger]
path = %q
`, filepath.Join(dir, "favorites"))
	if err := os.WriteFile(cfgPath, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	configFiles = []string{cfgPath}
	verbose = false
	asJSON = false
	visitorID = ""
	listType = "wealth"
	state = catalog.DefaultState()
	sortKey = "name"
	noCopy = false

	origUnsupported := clipboardUnsupported
	clipboardUnsupported = func() bool { return false }
	t.Cleanup(func() {
		configFiles = nil
		clipboardUnsupported = origUnsupported
	})
}

func newCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetContext(context.Background())
	return cmd, &buf
}

func TestList_SortsFundBySixMonth(t *testing.T) {
	setup(t)
	listType = "fund"
	sortKey = "6m"

	cmd, out := newCmd()
	if err := runList(cmd, nil); err != nil {
		t.Fatalf("runList failed: %v", err)
	}

	text := out.String()
	i1, i2, i3 := strings.Index(text, "f1"), strings.Index(text, "f3"), strings.Index(text, "f2")
	if i1 < 0 || i2 < 0 || i3 < 0 || !(i1 < i2 && i2 < i3) {
		t.Errorf("expected order f1, f3, f2, got:\n%s", text)
	}
	if !strings.Contains(text, "3 of 3 fund products") {
		t.Errorf("missing summary line:\n%s", text)
	}
}

func TestList_UnknownType(t *testing.T) {
	setup(t)
	listType = "stock"

	cmd, _ := newCmd()
	if err := runList(cmd, nil); err == nil {
		t.Fatal("expected error for unknown product type")
	}
}

func TestList_NoMatches(t *testing.T) {
	setup(t)
	state.Query = "no such product anywhere"

	cmd, out := newCmd()
	if err := runList(cmd, nil); err != nil {
		t.Fatalf("runList failed: %v", err)
	}
	if !strings.Contains(out.String(), "no products match") {
		t.Errorf("expected empty-result message, got:\n%s", out.String())
	}
}

func TestFavorites_ToggleThenFilter(t *testing.T) {
	setup(t)

	cmd, out := newCmd()
	if err := runFavToggle(cmd, []string{"w2"}); err != nil {
		t.Fatalf("runFavToggle failed: %v", err)
	}
	if !strings.Contains(out.String(), "added w2") {
		t.Errorf("unexpected toggle output: %s", out.String())
	}

	state.FavoritesOnly = true
	asJSON = true
	cmd, out = newCmd()
	if err := runList(cmd, nil); err != nil {
		t.Fatalf("runList failed: %v", err)
	}
	if !strings.Contains(out.String(), `"id": "w2"`) || strings.Contains(out.String(), `"id": "w1"`) {
		t.Errorf("expected only w2, got:\n%s", out.String())
	}

	cmd, out = newCmd()
	if err := runFavToggle(cmd, []string{"w2"}); err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if !strings.Contains(out.String(), `"favorited": false`) {
		t.Errorf("expected w2 removed, got:\n%s", out.String())
	}

	cmd, out = newCmd()
	if err := runFavList(cmd, nil); err != nil {
		t.Fatalf("runFavList failed: %v", err)
	}
	if strings.TrimSpace(out.String()) != "[]" {
		t.Errorf("expected empty favorites, got %q", out.String())
	}
}

func TestFilters_PrintsOptions(t *testing.T) {
	setup(t)

	cmd, out := newCmd()
	if err := runFilters(cmd, nil); err != nil {
		t.Fatalf("runFilters failed: %v", err)
	}
	for _, want := range []string{"issuers:", "banks:", "currencies:", "risk levels:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in:\n%s", want, out.String())
		}
	}
}

func TestCycles_PrintsAllAssets(t *testing.T) {
	setup(t)
	asJSON = true

	cmd, out := newCmd()
	if err := runCycles(cmd, nil); err != nil {
		t.Fatalf("runCycles failed: %v", err)
	}
	if got := strings.Count(out.String(), `"asset"`); got != 4 {
		t.Errorf("expected 4 cycles, got %d", got)
	}
}

func TestShare_CopiesToClipboard(t *testing.T) {
	setup(t)
	var copied string
	orig := clipboardWriteAll
	clipboardWriteAll = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { clipboardWriteAll = orig })

	cmd, out := newCmd()
	if err := runShare(cmd, []string{"w1"}); err != nil {
		t.Fatalf("runShare failed: %v", err)
	}
	if !strings.HasPrefix(copied, "【理财产品分享】") {
		t.Errorf("unexpected clipboard text: %q", copied)
	}
	if !strings.Contains(out.String(), copied) {
		t.Errorf("share text not printed:\n%s", out.String())
	}
	if !strings.Contains(out.String(), share.ClipboardNotice) {
		t.Errorf("missing clipboard notice:\n%s", out.String())
	}
}

func TestShare_ClipboardFailureStillPrints(t *testing.T) {
	setup(t)
	orig := clipboardWriteAll
	clipboardWriteAll = func(string) error { return errors.New("no display") }
	t.Cleanup(func() { clipboardWriteAll = orig })

	cmd, out := newCmd()
	if err := runShare(cmd, nil); err != nil {
		t.Fatalf("runShare failed: %v", err)
	}
	if !strings.Contains(out.String(), "产品编号：FinanceTool") {
		t.Errorf("expected list card text, got:\n%s", out.String())
	}
}

func TestShare_NoCopy(t *testing.T) {
	setup(t)
	noCopy = true
	called := false
	orig := clipboardWriteAll
	clipboardWriteAll = func(string) error { called = true; return nil }
	t.Cleanup(func() { clipboardWriteAll = orig })

	cmd, _ := newCmd()
	if err := runShare(cmd, []string{"w1"}); err != nil {
		t.Fatalf("runShare failed: %v", err)
	}
	if called {
		t.Error("clipboard should not be written with --no-copy")
	}
}

func TestShare_UnknownProduct(t *testing.T) {
	setup(t)

	cmd, _ := newCmd()
	if err := runShare(cmd, []string{"nope"}); err == nil {
		t.Fatal("expected error for unknown product")
	}
}
