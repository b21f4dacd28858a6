package models

import "strings"

// View is one of the named portal views.
type View string

const (
	ViewHome   View = "home"
	ViewWealth View = "wealth"
	ViewFund   View = "fund"
	ViewCycle  View = "cycle"
)

// ParseView resolves a URL fragment such as "#fund" to a view.
// Unrecognized or empty fragments resolve to home.
func ParseView(fragment string) View {
	v := View(strings.TrimPrefix(strings.TrimSpace(fragment), "#"))
	switch v {
	case ViewHome, ViewWealth, ViewFund, ViewCycle:
		return v
	}
	return ViewHome
}

// ProductType returns the product list shown by the view, if any.
func (v View) ProductType() (ProductType, bool) {
	switch v {
	case ViewWealth:
		return ProductTypeWealth, true
	case ViewFund:
		return ProductTypeFund, true
	}
	return "", false
}

// Views lists the navigation entries in menu order.
var Views = []View{ViewHome, ViewWealth, ViewFund, ViewCycle}

// Label returns the navigation label for the view.
func (v View) Label() string {
	switch v {
	case ViewWealth:
		return "理财"
	case ViewFund:
		return "基金"
	case ViewCycle:
		return "周期理财"
	default:
		return "主页"
	}
}
