package model

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Catalog data is read-only at runtime.
type Product struct {
	ID           int64
	Name         string
	UnitPrice    decimal.Decimal
	Image        string
	Description  string
	RoastOptions []string
	Origin       string
	Flavor       []string
}

// OffersRoast reports whether roast is one of the product's roast labels.
func (p Product) OffersRoast(roast string) bool {
	return slices.Contains(p.RoastOptions, roast)
}
