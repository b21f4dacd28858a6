package models

import "time"

// Dataset is one complete load of the product and cycle data.
// It is replaced wholesale, never patched.
type Dataset struct {
	Wealth   []Product   `json:"wealth"`
	Fund     []Product   `json:"fund"`
	Cycles   []CycleData `json:"cycles"`
	LoadedAt time.Time   `json:"loaded_at"`
}

// Products returns the list for the given product type.
func (d *Dataset) Products(t ProductType) []Product {
	if d == nil {
		return nil
	}
	switch t {
	case ProductTypeWealth:
		return d.Wealth
	case ProductTypeFund:
		return d.Fund
	}
	return nil
}
