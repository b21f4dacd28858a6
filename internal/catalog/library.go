package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/bobmcallan/wealth-portal/internal/common"
	"github.com/bobmcallan/wealth-portal/internal/models"
)

// LoadFunc produces a complete dataset or an error; it never returns a
// partial dataset.
type LoadFunc func(ctx context.Context) (*models.Dataset, error)

// Library holds the current dataset. Readers always see a complete dataset;
// reloads swap it wholesale.
type Library struct {
	mu        sync.RWMutex
	dataset   *models.Dataset
	logger    *common.Logger
	onReplace []func()
}

// NewLibrary creates an empty library.
func NewLibrary(logger *common.Logger) *Library {
	return &Library{
		dataset: &models.Dataset{},
		logger:  logger,
	}
}

// OnReplace registers fn to run after every successful dataset swap.
func (l *Library) OnReplace(fn func()) {
	l.mu.Lock()
	l.onReplace = append(l.onReplace, fn)
	l.mu.Unlock()
}

// Dataset returns the current dataset. Callers must not modify it.
func (l *Library) Dataset() *models.Dataset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dataset
}

// Products returns the current product list for t.
func (l *Library) Products(t models.ProductType) []models.Product {
	return l.Dataset().Products(t)
}

// Cycles returns the current market-cycle assessments.
func (l *Library) Cycles() []models.CycleData {
	return l.Dataset().Cycles
}

// Find looks up a product by id across both product lists.
func (l *Library) Find(id string) (models.Product, bool) {
	d := l.Dataset()
	for _, list := range [][]models.Product{d.Wealth, d.Fund} {
		for i := range list {
			if list[i].ID == id {
				return list[i], true
			}
		}
	}
	return models.Product{}, false
}

// Replace swaps in d as the current dataset.
func (l *Library) Replace(d *models.Dataset) {
	if d.LoadedAt.IsZero() {
		d.LoadedAt = time.Now()
	}
	l.mu.Lock()
	l.dataset = d
	hooks := append([]func(){}, l.onReplace...)
	l.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// Reload runs load and swaps in its result. On failure the previous dataset
// is kept and the error is logged and returned. If ctx is cancelled before
// load returns, the result is discarded.
func (l *Library) Reload(ctx context.Context, load LoadFunc) error {
	d, err := load(ctx)
	if err != nil {
		if l.logger != nil {
			l.logger.Error().Str("error", err.Error()).Msg("data load failed, keeping previous dataset")
		}
		return err
	}
	if err := ctx.Err(); err != nil {
		if l.logger != nil {
			l.logger.Warn().Msg("data load cancelled, discarding result")
		}
		return err
	}

	l.Replace(d)

	if l.logger != nil {
		l.logger.Info().
			Int("wealth", len(d.Wealth)).
			Int("fund", len(d.Fund)).
			Int("cycles", len(d.Cycles)).
			Msg("dataset loaded")
	}
	return nil
}

// RefreshEvery reloads the dataset every interval until ctx is done.
func (l *Library) RefreshEvery(ctx context.Context, interval time.Duration, load LoadFunc) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = l.Reload(ctx, load)
		}
	}
}
