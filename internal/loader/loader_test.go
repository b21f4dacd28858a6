package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bobmcallan/wealth-portal/internal/catalog"
	"github.com/bobmcallan/wealth-portal/internal/common"
	"github.com/bobmcallan/wealth-portal/internal/config"
	"github.com/bobmcallan/wealth-portal/internal/models"
)

const (
	testWealth = `[{"id":"w1","name":"W1","code":"C1","returns":{"1m":1,"3m":2,"6m":3},"banks":["招商银行"],"type":"wealth","extra":"ignored"}]`
	testFund   = `[{"id":"f1","name":"F1","code":"C2","returns":{"1m":-1.2},"banks":["天天基金"],"manager":"张坤"}]`
	testCycles = `[{"asset":"A股市场","stage":"筑底期","progress":20,"description":"d","suggestion":"s"}]`
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// dataServer serves the three test files; fundStatus overrides fund.json.
func dataServer(fundStatus *atomic.Int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch strings.TrimPrefix(r.URL.Path, "/") {
		case WealthFile:
			w.Write([]byte(testWealth))
		case FundFile:
			if code := int(fundStatus.Load()); code != 0 {
				w.WriteHeader(code)
				return
			}
			w.Write([]byte(testFund))
		case CycleFile:
			w.Write([]byte(testCycles))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestLoad_DirSource(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		WealthFile: testWealth,
		FundFile:   testFund,
		CycleFile:  testCycles,
	})

	d, err := Load(context.Background(), DirSource{Dir: dir})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(d.Wealth) != 1 || len(d.Fund) != 1 || len(d.Cycles) != 1 {
		t.Fatalf("unexpected counts: %d %d %d", len(d.Wealth), len(d.Fund), len(d.Cycles))
	}
	if d.Fund[0].Type != models.ProductTypeFund {
		t.Errorf("expected missing type to default to fund, got %q", d.Fund[0].Type)
	}
	if _, ok := d.Fund[0].Returns.Get(models.Period6M); ok {
		t.Error("expected absent 6m return to stay unknown")
	}
	if d.Cycles[0].Stage != models.StageBottoming {
		t.Errorf("unexpected stage %q", d.Cycles[0].Stage)
	}
	if d.LoadedAt.IsZero() {
		t.Error("expected LoadedAt")
	}
}

func TestLoad_MissingFileFailsWholeLoad(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		WealthFile: testWealth,
		CycleFile:  testCycles,
	})

	d, err := Load(context.Background(), DirSource{Dir: dir})
	if err == nil {
		t.Fatal("expected error")
	}
	if d != nil {
		t.Error("expected no partial dataset")
	}
}

func TestLoad_MalformedJSONFailsWholeLoad(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		WealthFile: testWealth,
		FundFile:   testFund,
		CycleFile:  `{"not":"an array"`,
	})

	_, err := Load(context.Background(), DirSource{Dir: dir})
	if err == nil || !strings.Contains(err.Error(), CycleFile) {
		t.Fatalf("expected parse error naming %s, got %v", CycleFile, err)
	}
}

func TestLoad_HTTPSource(t *testing.T) {
	var status atomic.Int32
	srv := dataServer(&status)
	defer srv.Close()

	d, err := Load(context.Background(), NewHTTPSource(srv.URL, 5*time.Second))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(d.Wealth) != 1 || len(d.Fund) != 1 || len(d.Cycles) != 1 {
		t.Errorf("unexpected counts: %d %d %d", len(d.Wealth), len(d.Fund), len(d.Cycles))
	}
}

func TestLoad_FundServerErrorDiscardsEverything(t *testing.T) {
	var status atomic.Int32
	srv := dataServer(&status)
	defer srv.Close()

	lib := catalog.NewLibrary(common.NewSilentLogger())
	load := Func(NewHTTPSource(srv.URL, 5*time.Second))

	status.Store(http.StatusInternalServerError)
	err := lib.Reload(context.Background(), load)
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
	if n := len(lib.Products(models.ProductTypeWealth)) + len(lib.Products(models.ProductTypeFund)) + len(lib.Cycles()); n != 0 {
		t.Errorf("expected nothing applied, got %d records", n)
	}

	// A good load followed by a failing one keeps the good dataset whole
	status.Store(0)
	if err := lib.Reload(context.Background(), load); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	good := lib.Dataset()

	status.Store(http.StatusInternalServerError)
	if err := lib.Reload(context.Background(), load); err == nil {
		t.Fatal("expected error")
	}
	if lib.Dataset() != good {
		t.Error("expected previous dataset to be kept unchanged")
	}
}

func TestLoad_Embedded(t *testing.T) {
	d, err := Load(context.Background(), EmbeddedSource{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(d.Wealth) != 4 || len(d.Fund) != 3 || len(d.Cycles) != 4 {
		t.Errorf("unexpected counts: %d %d %d", len(d.Wealth), len(d.Fund), len(d.Cycles))
	}
	for _, c := range d.Cycles {
		if !c.Stage.Valid() {
			t.Errorf("invalid stage %q for %s", c.Stage, c.Asset)
		}
		if c.Progress < 0 || c.Progress > 100 {
			t.Errorf("progress out of range for %s: %d", c.Asset, c.Progress)
		}
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, EmbeddedSource{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		cfg     config.DataConfig
		want    string
		wantErr bool
	}{
		{config.DataConfig{}, "embedded", false},
		{config.DataConfig{Source: "embedded"}, "embedded", false},
		{config.DataConfig{Source: "dir", Dir: "/srv/data"}, "dir:/srv/data", false},
		{config.DataConfig{Source: "http", BaseURL: "https://example.com/data/"}, "http:https://example.com/data", false},
		{config.DataConfig{Source: "http"}, "", true},
		{config.DataConfig{Source: "ftp"}, "", true},
	}
	for _, tt := range tests {
		src, err := NewSource(&tt.cfg)
		if tt.wantErr {
			if err == nil {
				t.Errorf("expected error for %+v", tt.cfg)
			}
			continue
		}
		if err != nil {
			t.Errorf("unexpected error for %+v: %v", tt.cfg, err)
			continue
		}
		if src.String() != tt.want {
			t.Errorf("expected %s, got %s", tt.want, src.String())
		}
	}
}
