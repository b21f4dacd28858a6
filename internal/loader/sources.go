package loader

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/wealth-portal/internal/client"
)

// Source reads a named data file.
type Source interface {
	Read(ctx context.Context, name string) ([]byte, error)
	String() string
}

// DirSource reads data files from a local directory.
type DirSource struct {
	Dir string
}

func (s DirSource) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (s DirSource) String() string { return "dir:" + s.Dir }

// HTTPSource fetches data files relative to a base URL.
type HTTPSource struct {
	client *client.DataClient
}

// NewHTTPSource creates a source for baseURL.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{client: client.NewDataClient(baseURL, timeout)}
}

func (s *HTTPSource) Read(ctx context.Context, name string) ([]byte, error) {
	return s.client.Fetch(ctx, name)
}

func (s *HTTPSource) String() string { return "http:" + s.client.BaseURL() }

//go:embed data/*.json
var embedded embed.FS

// EmbeddedSource serves the data files compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := embedded.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", name, err)
	}
	return data, nil
}

func (EmbeddedSource) String() string { return "embedded" }
