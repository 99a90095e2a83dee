package cart

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 999")
	ErrRoastRequired   = errors.New("roast is required")
	ErrRoastNotOffered = errors.New("roast is not offered for this product")
)
