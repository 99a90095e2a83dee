// Package cart applies shopper intents to a model.Cart.
//
// Every operation takes the current cart by value and returns a new one with
// ItemCount and Subtotal recomputed from Items. The input cart is never
// modified and the returned cart never shares its Items backing array with the
// input.
package cart

import (
	"fmt"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

// IDGenerator issues line item ids.
type IDGenerator interface {
	NewID() string
}

// MaxQuantity caps the quantity of a single line.
const MaxQuantity int64 = 999

type Engine struct {
	ids IDGenerator
}

// DI
func NewEngine(ids IDGenerator) *Engine {
	return &Engine{ids: ids}
}

// AddItem adds quantity of product with the given roast. An existing line for
// the same (product, roast) is merged in place; otherwise a new line is
// appended. The resulting line quantity may not exceed MaxQuantity.
func (e *Engine) AddItem(c model.Cart, p model.Product, quantity int64, roast string) (model.Cart, error) {
	if quantity < 1 || quantity > MaxQuantity {
		return c, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if roast == "" {
		return c, ErrRoastRequired
	}
	if !p.OffersRoast(roast) {
		return c, fmt.Errorf("%w: %q for product %d", ErrRoastNotOffered, roast, p.ID)
	}

	items := cloneItems(c.Items, 1)
	for i, it := range items {
		if it.Product.ID == p.ID && it.Roast == roast {
			if quantity > MaxQuantity-it.Quantity {
				return c, fmt.Errorf("%w: %d + %d exceeds %d", ErrInvalidQuantity, it.Quantity, quantity, MaxQuantity)
			}
			items[i] = withQuantity(it, it.Quantity+quantity, p)
			return derive(items), nil
		}
	}

	items = append(items, withQuantity(model.LineItem{
		ID:    e.ids.NewID(),
		Roast: roast,
	}, quantity, p))
	return derive(items), nil
}

// UpdateQuantity sets the absolute quantity of line itemID.
// Quantities outside 1..MaxQuantity are ignored rather than removing the
// line, and an unknown id leaves the cart as it was.
func (e *Engine) UpdateQuantity(c model.Cart, itemID string, quantity int64) model.Cart {
	items := cloneItems(c.Items, 0)
	if quantity < 1 || quantity > MaxQuantity {
		return derive(items)
	}
	for i, it := range items {
		if it.ID == itemID {
			items[i] = withQuantity(it, quantity, it.Product)
			break
		}
	}
	return derive(items)
}

// RemoveItem drops line itemID. Removing an id that is not present is a no-op.
func (e *Engine) RemoveItem(c model.Cart, itemID string) model.Cart {
	items := make([]model.LineItem, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ID != itemID {
			items = append(items, it)
		}
	}
	return derive(items)
}

// Clear returns the empty cart.
func (e *Engine) Clear() model.Cart {
	return Empty()
}

func Empty() model.Cart {
	return model.Cart{
		Items:     []model.LineItem{},
		ItemCount: 0,
		Subtotal:  decimal.Zero,
	}
}

// Totals recomputes ItemCount and Subtotal from Items.
func Totals(items []model.LineItem) (int64, decimal.Decimal) {
	var count int64
	subtotal := decimal.Zero
	for _, it := range items {
		count += it.Quantity
		subtotal = subtotal.Add(it.LineTotal)
	}
	return count, subtotal
}

func derive(items []model.LineItem) model.Cart {
	count, subtotal := Totals(items)
	return model.Cart{
		Items:     items,
		ItemCount: count,
		Subtotal:  subtotal,
	}
}

// the product snapshot is refreshed along with the quantity
func withQuantity(it model.LineItem, quantity int64, p model.Product) model.LineItem {
	it.Product = p
	it.Quantity = quantity
	it.LineTotal = LineTotal(p.UnitPrice, quantity)
	return it
}

// LineTotal is unitPrice × quantity rounded to cents.
func LineTotal(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity)).Round(2)
}

func cloneItems(items []model.LineItem, extra int) []model.LineItem {
	out := make([]model.LineItem, len(items), len(items)+extra)
	copy(out, items)
	return out
}
