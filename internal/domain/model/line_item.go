package model

import "github.com/shopspring/decimal"

// one line per (product, roast)
type LineItem struct {
	ID        string
	Product   Product
	Roast     string
	Quantity  int64
	LineTotal decimal.Decimal
}
