package model

import "github.com/shopspring/decimal"

// Cart is a shopper's line items plus totals derived from them.
// ItemCount and Subtotal are only ever written by the cart engine.
type Cart struct {
	Items     []LineItem
	ItemCount int64
	Subtotal  decimal.Decimal
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItem returns the index of the line with id, or -1.
func (c Cart) FindItem(id string) int {
	for i, it := range c.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
