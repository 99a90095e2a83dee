package repository

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// expired carts are swept at most this often
const sweepInterval = time.Minute

type Clock interface {
	Now() time.Time
}

type cartEntry struct {
	cart      model.Cart
	expiresAt time.Time
}

// In-process cart store. With WithExpiry, a cart is dropped once ttl has
// passed since its last update; otherwise carts live as long as the process.
type CartMemoryRepository struct {
	mu        sync.Mutex
	carts     map[string]cartEntry
	ttl       time.Duration
	clock     Clock
	nextSweep time.Time
}

type CartMemoryOption func(*CartMemoryRepository)

// WithExpiry drops carts that have not been updated for ttl. With the session
// TTL, a cart goes no earlier than the last token that could address it.
func WithExpiry(ttl time.Duration, clock Clock) CartMemoryOption {
	return func(r *CartMemoryRepository) {
		r.ttl = ttl
		r.clock = clock
	}
}

// DI
func NewCartMemoryRepository(opts ...CartMemoryOption) *CartMemoryRepository {
	r := &CartMemoryRepository{carts: make(map[string]cartEntry)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *CartMemoryRepository) Get(ctx context.Context, sessionID string) (model.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.lookup(sessionID, r.now())
	if !ok {
		return cart.Empty(), nil
	}
	return e.cart, nil
}

// Update serializes all intents through one lock. fn must not block.
func (r *CartMemoryRepository) Update(ctx context.Context, sessionID string, fn repo.CartUpdateFunc) (model.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	current := cart.Empty()
	if e, ok := r.lookup(sessionID, now); ok {
		current = e.cart
	}

	next, err := fn(current)
	if err != nil {
		return current, err
	}

	//empty carts are not kept
	if next.IsEmpty() {
		delete(r.carts, sessionID)
		return next, nil
	}

	e := cartEntry{cart: next}
	if r.ttl > 0 {
		e.expiresAt = now.Add(r.ttl)
	}
	r.carts[sessionID] = e
	return next, nil
}

// Len reports how many sessions hold a non-empty cart.
func (r *CartMemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}

func (r *CartMemoryRepository) now() time.Time {
	if r.clock == nil {
		return time.Now()
	}
	return r.clock.Now()
}

// callers hold mu
func (r *CartMemoryRepository) lookup(sessionID string, now time.Time) (cartEntry, bool) {
	e, ok := r.carts[sessionID]
	if !ok {
		return cartEntry{}, false
	}
	if r.expired(e, now) {
		delete(r.carts, sessionID)
		return cartEntry{}, false
	}
	return e, true
}

func (r *CartMemoryRepository) expired(e cartEntry, now time.Time) bool {
	return r.ttl > 0 && !now.Before(e.expiresAt)
}

// callers hold mu
func (r *CartMemoryRepository) sweep(now time.Time) {
	if r.ttl <= 0 || now.Before(r.nextSweep) {
		return
	}
	for id, e := range r.carts {
		if r.expired(e, now) {
			delete(r.carts, id)
		}
	}
	r.nextSweep = now.Add(sweepInterval)
}
