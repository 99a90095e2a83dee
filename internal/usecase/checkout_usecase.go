package usecase

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/validator"

	"go.uber.org/zap"
)

// Scheduler runs f once after d. The payment completion cannot be cancelled.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type PaymentValidator interface {
	ValidatePayment(ctx context.Context, form validator.PaymentForm) error
}

type PaymentOutput struct {
	Status        string `json:"status"`
	Total         string `json:"total"`
	ItemCount     int64  `json:"item_count"`
	CompletesInMS int64  `json:"completes_in_ms"`
}

// CheckoutUsecase simulates payment. Nothing is charged: a valid form
// schedules a cart clear after the configured delay.
type CheckoutUsecase struct {
	cartRepo  repo.CartRepository
	engine    *cart.Engine
	validator PaymentValidator
	scheduler Scheduler
	delay     time.Duration
	log       *zap.Logger
}

// DI
func NewCheckoutUsecase(
	cartRepo repo.CartRepository,
	engine *cart.Engine,
	validator PaymentValidator,
	scheduler Scheduler,
	delay time.Duration,
	log *zap.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		cartRepo:  cartRepo,
		engine:    engine,
		validator: validator,
		scheduler: scheduler,
		delay:     delay,
		log:       log,
	}
}

func (u *CheckoutUsecase) Pay(ctx context.Context, sessionID string, form validator.PaymentForm) (PaymentOutput, error) {
	if sessionID == "" {
		return PaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}

	c, err := u.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return PaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}
	if c.IsEmpty() {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	if err := u.validator.ValidatePayment(ctx, form); err != nil {
		return PaymentOutput{}, err
	}

	total := c.Subtotal.StringFixed(2)
	u.log.Info("payment processing",
		zap.String("session", sessionID),
		zap.String("total", total),
		zap.Int64("items", c.ItemCount),
	)

	u.scheduler.AfterFunc(u.delay, func() {
		u.complete(sessionID, total)
	})

	return PaymentOutput{
		Status:        "processing",
		Total:         total,
		ItemCount:     c.ItemCount,
		CompletesInMS: u.delay.Milliseconds(),
	}, nil
}

// complete runs off the request path, so it gets its own context.
func (u *CheckoutUsecase) complete(sessionID, total string) {
	_, err := u.cartRepo.Update(context.Background(), sessionID, func(model.Cart) (model.Cart, error) {
		return u.engine.Clear(), nil
	})
	if err != nil {
		u.log.Error("payment completion failed", zap.String("session", sessionID), zap.Error(err))
		return
	}
	u.log.Info("payment completed", zap.String("session", sessionID), zap.String("total", total))
}
