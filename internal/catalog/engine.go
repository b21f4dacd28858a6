// Package catalog derives the displayed product lists from the loaded
// collection and a view's filter/sort state.
package catalog

import (
	"math"
	"slices"
	"time"

	"github.com/bobmcallan/wealth-portal/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Favorites reports membership in a visitor's favorite set.
type Favorites interface {
	Contains(id string) bool
}

// Engine derives product lists. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	locale language.Tag
}

// NewEngine creates an engine that orders names for the given BCP 47 locale.
// An unparseable locale falls back to the root collation order.
func NewEngine(locale string) *Engine {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return &Engine{locale: tag}
}

// collator returns a fresh collator; collate.Collator is not safe for
// concurrent use.
func (e *Engine) collator() *collate.Collator {
	return collate.New(e.locale)
}

// Derive filters and sorts products for state. The input slice is never
// modified and the result is always a new slice. favorites may be nil when
// state.FavoritesOnly is false.
func (e *Engine) Derive(products []models.Product, state QueryState, favorites Favorites) []models.Product {
	query := normalizeQuery(state.Query)

	result := make([]models.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if !matches(p, query) {
			continue
		}
		if !isAll(state.Issuer) && p.Issuer != state.Issuer {
			continue
		}
		if !isAll(state.Bank) && !p.HasBank(state.Bank) {
			continue
		}
		if !isAll(state.Currency) && p.Currency != state.Currency {
			continue
		}
		if !isAll(state.RiskLevel) && p.RiskLevel != state.RiskLevel {
			continue
		}
		if state.FavoritesOnly && (favorites == nil || !favorites.Contains(p.ID)) {
			continue
		}
		result = append(result, *p)
	}

	e.sort(result, state.Sort)
	return result
}

func (e *Engine) sort(products []models.Product, key SortKey) {
	switch key {
	case SortBy1M, SortBy3M, SortBy6M:
		period := models.Period(key)
		slices.SortStableFunc(products, func(a, b models.Product) int {
			av, bv := returnOrMin(a, period), returnOrMin(b, period)
			switch {
			case av > bv:
				return -1
			case av < bv:
				return 1
			}
			return 0
		})
	default:
		c := e.collator()
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return c.CompareString(a.Name, b.Name)
		})
	}
}

// returnOrMin sorts unknown returns after every known value.
func returnOrMin(p models.Product, period models.Period) float64 {
	if v, ok := p.Returns.Get(period); ok {
		return v
	}
	return math.Inf(-1)
}

// FilterOptions are the distinct categorical values present in a collection.
type FilterOptions struct {
	Issuers    []string `json:"issuers"`
	Banks      []string `json:"banks"`
	Currencies []string `json:"currencies"`
	RiskLevels []string `json:"risk_levels"`
}

// Options collects the distinct non-empty issuers, banks, currencies and risk
// levels in products, each in collation order.
func (e *Engine) Options(products []models.Product) FilterOptions {
	var issuers, banks, currencies, risks []string
	for i := range products {
		p := &products[i]
		issuers = append(issuers, p.Issuer)
		banks = append(banks, p.Banks...)
		currencies = append(currencies, p.Currency)
		risks = append(risks, p.RiskLevel)
	}
	c := e.collator()
	return FilterOptions{
		Issuers:    distinctSorted(c, issuers),
		Banks:      distinctSorted(c, banks),
		Currencies: distinctSorted(c, currencies),
		RiskLevels: distinctSorted(c, risks),
	}
}

func distinctSorted(c *collate.Collator, values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.SortStableFunc(out, c.CompareString)
	return out
}

// updatedAtLayouts are tried in order when parsing Product.UpdatedAt.
var updatedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"20060102",
}

// ParseUpdatedAt parses an ISO-ish timestamp. Values without a zone are read
// as UTC.
func ParseUpdatedAt(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range updatedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LastUpdated returns the latest parseable UpdatedAt across products.
// It returns false when no product carries a parseable timestamp.
func LastUpdated(products []models.Product) (time.Time, bool) {
	var latest time.Time
	found := false
	for i := range products {
		t, ok := ParseUpdatedAt(products[i].UpdatedAt)
		if !ok {
			continue
		}
		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}
	return latest, found
}
