// Package loader fetches the three data files and assembles a dataset.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bobmcallan/wealth-portal/internal/client"
	"github.com/bobmcallan/wealth-portal/internal/config"
	"github.com/bobmcallan/wealth-portal/internal/models"
	"golang.org/x/sync/errgroup"
)

// Data file names.
const (
	WealthFile = "wealth.json"
	FundFile   = "fund.json"
	CycleFile  = "cycle.json"
)

// ErrStatus matches a data file served with a non-2xx status.
var ErrStatus = client.ErrStatus

// Load fetches all three files concurrently. If any fetch or decode fails
// the whole load fails and nothing is returned.
func Load(ctx context.Context, src Source) (*models.Dataset, error) {
	var (
		wealth []models.Product
		fund   []models.Product
		cycles []models.CycleData
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		wealth, err = readProducts(gctx, src, WealthFile, models.ProductTypeWealth)
		return err
	})
	g.Go(func() error {
		var err error
		fund, err = readProducts(gctx, src, FundFile, models.ProductTypeFund)
		return err
	})
	g.Go(func() error {
		return readJSON(gctx, src, CycleFile, &cycles)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.Dataset{
		Wealth:   wealth,
		Fund:     fund,
		Cycles:   cycles,
		LoadedAt: time.Now(),
	}, nil
}

func readProducts(ctx context.Context, src Source, name string, t models.ProductType) ([]models.Product, error) {
	var products []models.Product
	if err := readJSON(ctx, src, name, &products); err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Type == "" {
			products[i].Type = t
		}
	}
	return products, nil
}

func readJSON(ctx context.Context, src Source, name string, v any) error {
	data, err := src.Read(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// NewSource builds the source selected by cfg.
func NewSource(cfg *config.DataConfig) (Source, error) {
	switch cfg.Source {
	case "", "embedded":
		return EmbeddedSource{}, nil
	case "dir":
		return DirSource{Dir: cfg.Dir}, nil
	case "http":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("data.base_url is required for the http source")
		}
		return NewHTTPSource(cfg.BaseURL, cfg.GetFetchTimeout()), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Source)
	}
}

// Func adapts src to the signature used by the catalog library.
func Func(src Source) func(ctx context.Context) (*models.Dataset, error) {
	return func(ctx context.Context) (*models.Dataset, error) {
		return Load(ctx, src)
	}
}
