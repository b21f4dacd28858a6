package models

import "strconv"

// ProductType identifies which list a product belongs to.
type ProductType string

const (
	ProductTypeWealth ProductType = "wealth"
	ProductTypeFund   ProductType = "fund"
)

// ParseProductType returns the product type for s, or false if s is not a known type.
func ParseProductType(s string) (ProductType, bool) {
	switch ProductType(s) {
	case ProductTypeWealth, ProductTypeFund:
		return ProductType(s), true
	}
	return "", false
}

// Title returns the display title used for the product list and share text.
func (t ProductType) Title() string {
	switch t {
	case ProductTypeFund:
		return "基金产品"
	default:
		return "理财产品"
	}
}

// Period is a return-rate window key.
type Period string

const (
	Period1M Period = "1m"
	Period3M Period = "3m"
	Period6M Period = "6m"
)

// Periods lists the return windows in display order.
var Periods = []Period{Period1M, Period3M, Period6M}

// Returns holds signed percentage returns per period.
// A nil value means the return is unknown, which is distinct from zero.
type Returns struct {
	OneMonth   *float64 `json:"1m,omitempty"`
	ThreeMonth *float64 `json:"3m,omitempty"`
	SixMonth   *float64 `json:"6m,omitempty"`
}

// Get returns the value for period p and whether it is known.
func (r Returns) Get(p Period) (float64, bool) {
	var v *float64
	switch p {
	case Period1M:
		v = r.OneMonth
	case Period3M:
		v = r.ThreeMonth
	case Period6M:
		v = r.SixMonth
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Product is a wealth-management or fund instrument.
type Product struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Code             string      `json:"code"`
	Returns          Returns     `json:"returns"`
	Banks            []string    `json:"banks"`
	Type             ProductType `json:"type"`
	Manager          string      `json:"manager,omitempty"`
	Issuer           string      `json:"issuer,omitempty"`
	Currency         string      `json:"currency,omitempty"`
	RiskLevel        string      `json:"riskLevel,omitempty"`
	URL              string      `json:"url,omitempty"`
	MinHoldDays      *int        `json:"minHoldDays,omitempty"`
	RegistrationCode string      `json:"registrationCode,omitempty"`
	FundCode         string      `json:"fundCode,omitempty"`
	RealProductCode  string      `json:"realProductCode,omitempty"`
	UpdatedAt        string      `json:"updatedAt,omitempty"`
}

// HasBank reports whether bank is one of the product's distribution channels.
func (p *Product) HasBank(bank string) bool {
	for _, b := range p.Banks {
		if b == bank {
			return true
		}
	}
	return false
}

// FormatReturn renders a return value in the shortest form that round-trips,
// matching how the data files spell numbers.
func FormatReturn(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Float is a convenience for building Returns literals.
func Float(v float64) *float64 {
	return &v
}
