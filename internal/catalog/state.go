package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/bobmcallan/wealth-portal/internal/models"
)

// All is the categorical filter value that disables a filter.
const All = "all"

// SortKey selects the display order.
type SortKey string

const (
	SortByName SortKey = "name"
	SortBy1M   SortKey = SortKey(models.Period1M)
	SortBy3M   SortKey = SortKey(models.Period3M)
	SortBy6M   SortKey = SortKey(models.Period6M)
)

// ParseSortKey returns the sort key for s, falling back to SortByName.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortBy1M, SortBy3M, SortBy6M:
		return SortKey(s)
	}
	return SortByName
}

// QueryState is the filter and sort state of one product list view.
type QueryState struct {
	Query         string  `json:"query"`
	Sort          SortKey `json:"sort"`
	FavoritesOnly bool    `json:"favorites_only"`
	Issuer        string  `json:"issuer"`
	Bank          string  `json:"bank"`
	Currency      string  `json:"currency"`
	RiskLevel     string  `json:"risk_level"`
}

// DefaultState returns the state a list view starts in.
func DefaultState() QueryState {
	return QueryState{
		Sort:      SortByName,
		Issuer:    All,
		Bank:      All,
		Currency:  All,
		RiskLevel: All,
	}
}

// ParseState reads a QueryState from URL query values:
// q, sort, favorites, issuer, bank, currency, risk.
func ParseState(v url.Values) QueryState {
	s := DefaultState()
	s.Query = v.Get("q")
	s.Sort = ParseSortKey(v.Get("sort"))
	if fav := v.Get("favorites"); fav != "" {
		s.FavoritesOnly, _ = strconv.ParseBool(fav)
	}
	s.Issuer = categoryOrAll(v.Get("issuer"))
	s.Bank = categoryOrAll(v.Get("bank"))
	s.Currency = categoryOrAll(v.Get("currency"))
	s.RiskLevel = categoryOrAll(v.Get("risk"))
	return s
}

// Values encodes the state back into URL query values, omitting defaults.
func (s QueryState) Values() url.Values {
	v := url.Values{}
	if s.Query != "" {
		v.Set("q", s.Query)
	}
	if s.Sort != "" && s.Sort != SortByName {
		v.Set("sort", string(s.Sort))
	}
	if s.FavoritesOnly {
		v.Set("favorites", "true")
	}
	setCategory(v, "issuer", s.Issuer)
	setCategory(v, "bank", s.Bank)
	setCategory(v, "currency", s.Currency)
	setCategory(v, "risk", s.RiskLevel)
	return v
}

func categoryOrAll(s string) string {
	if strings.TrimSpace(s) == "" {
		return All
	}
	return s
}

func setCategory(v url.Values, key, value string) {
	if !isAll(value) {
		v.Set(key, value)
	}
}

func isAll(s string) bool {
	return s == "" || s == All
}
