package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// CartUpdateFunc derives the next cart from the current one.
type CartUpdateFunc func(current model.Cart) (model.Cart, error)

// Session-scoped carts.
type CartRepository interface {
	// Get returns the session's cart, or an empty cart for a new session.
	Get(ctx context.Context, sessionID string) (model.Cart, error)
	// Update applies fn to the session's cart one call at a time. The result
	// is stored only when fn returns a nil error.
	Update(ctx context.Context, sessionID string, fn CartUpdateFunc) (model.Cart, error)
}
