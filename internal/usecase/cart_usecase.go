package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CartUsecase is the /cart business logic. Every intent goes through the cart
// engine inside CartRepository.Update, so a session's intents apply one at a
// time.
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
	engine      *cart.Engine
}

// DI
func NewCartUsecase(
	cartRepo repo.CartRepository,
	productRepo repo.ProductRepository,
	engine *cart.Engine,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		engine:      engine,
	}
}

type CartItemResponse struct {
	ID        string `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Roast     string `json:"roast"`
	UnitPrice string `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	ItemCount int64              `json:"item_count"`
	Subtotal  string             `json:"subtotal"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
	Roast     string
}

type UpdateCartItemInput struct {
	Quantity int64
}

func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}

	c, err := u.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}
	return toCartResponse(c), nil
}

// AddToCart merges into an existing (product, roast) line or appends a new one.
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID string, in AddCartInput) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}

	roast := strings.TrimSpace(in.Roast)
	c, err := u.cartRepo.Update(ctx, sessionID, func(current model.Cart) (model.Cart, error) {
		return u.engine.AddItem(current, p, in.Quantity, roast)
	})
	if err != nil {
		return CartResponse{}, engineError(err)
	}
	return toCartResponse(c), nil
}

// UpdateCartItem sets an absolute quantity. Quantities below 1 and unknown
// ids leave the cart unchanged.
func (u *CartUsecase) UpdateCartItem(ctx context.Context, sessionID string, itemID string, in UpdateCartItemInput) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}
	if itemID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.cartRepo.Update(ctx, sessionID, func(current model.Cart) (model.Cart, error) {
		return u.engine.UpdateQuantity(current, itemID, in.Quantity), nil
	})
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}
	return toCartResponse(c), nil
}

// DeleteCartItem is idempotent.
func (u *CartUsecase) DeleteCartItem(ctx context.Context, sessionID string, itemID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}
	if itemID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.cartRepo.Update(ctx, sessionID, func(current model.Cart) (model.Cart, error) {
		return u.engine.RemoveItem(current, itemID), nil
	})
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}
	return toCartResponse(c), nil
}

func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}

	c, err := u.cartRepo.Update(ctx, sessionID, func(model.Cart) (model.Cart, error) {
		return u.engine.Clear(), nil
	})
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}
	return toCartResponse(c), nil
}

func engineError(err error) error {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		return NewHTTPError(http.StatusBadRequest, "invalid quantity")
	case errors.Is(err, cart.ErrRoastRequired):
		return NewHTTPError(http.StatusBadRequest, "roast is required")
	case errors.Is(err, cart.ErrRoastNotOffered):
		return NewHTTPError(http.StatusBadRequest, "roast not offered")
	default:
		return NewHTTPError(http.StatusInternalServerError, "cart error")
	}
}

func toCartResponse(c model.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, CartItemResponse{
			ID:        it.ID,
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Image:     it.Product.Image,
			Roast:     it.Roast,
			UnitPrice: it.Product.UnitPrice.StringFixed(2),
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal.StringFixed(2),
		})
	}

	return CartResponse{
		Items:     items,
		ItemCount: c.ItemCount,
		Subtotal:  c.Subtotal.StringFixed(2),
	}
}
