package catalog

import (
	"strconv"
	"strings"

	"github.com/bobmcallan/wealth-portal/internal/models"
)

const searchSeparator = " | "

// SearchableText joins every defined scalar field of p, its return values and
// its bank names into the text a search query is matched against.
func SearchableText(p *models.Product) string {
	parts := make([]string, 0, 20+len(p.Banks))
	add := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}

	add(p.Name)
	add(p.ID)
	add(p.Code)
	add(string(p.Type))
	add(p.Manager)
	add(p.Issuer)
	add(p.Currency)
	if p.MinHoldDays != nil {
		add(strconv.Itoa(*p.MinHoldDays))
	}
	add(p.RiskLevel)
	add(p.URL)
	add(p.RegistrationCode)
	add(p.FundCode)
	add(p.RealProductCode)
	add(p.UpdatedAt)
	for _, period := range models.Periods {
		if v, ok := p.Returns.Get(period); ok {
			add(models.FormatReturn(v))
		}
	}
	for _, b := range p.Banks {
		add(b)
	}

	return strings.Join(parts, searchSeparator)
}

// normalizeQuery trims and case-folds a search query.
func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// matches reports whether p matches the normalized query. An empty query
// matches every product.
func matches(p *models.Product, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(SearchableText(p)), query)
}
