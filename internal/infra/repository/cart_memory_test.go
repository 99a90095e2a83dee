package repository_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/model"
	infraRepo "storefront/internal/infra/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineIDs struct{ n atomic.Int64 }

func (g *lineIDs) NewID() string {
	return "line-" + strconv.FormatInt(g.n.Add(1), 10)
}

func beans() model.Product {
	return model.Product{
		ID:           5,
		Name:         "Brazilian Santos",
		UnitPrice:    decimal.RequireFromString("19.99"),
		RoastOptions: []string{"Medium Roast", "Dark Roast"},
	}
}

func TestCartMemoryRepository_NewSessionIsEmpty(t *testing.T) {
	r := infraRepo.NewCartMemoryRepository()

	c, err := r.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Subtotal.IsZero())
}

func TestCartMemoryRepository_UpdateIsPerSession(t *testing.T) {
	ctx := context.Background()
	r := infraRepo.NewCartMemoryRepository()
	e := cart.NewEngine(&lineIDs{})

	_, err := r.Update(ctx, "s1", func(c model.Cart) (model.Cart, error) {
		return e.AddItem(c, beans(), 2, "Dark Roast")
	})
	require.NoError(t, err)

	s1, _ := r.Get(ctx, "s1")
	s2, _ := r.Get(ctx, "s2")
	assert.Equal(t, int64(2), s1.ItemCount)
	assert.True(t, s2.IsEmpty())
	assert.Equal(t, 1, r.Len())
}

func TestCartMemoryRepository_FailedUpdateKeepsCart(t *testing.T) {
	ctx := context.Background()
	r := infraRepo.NewCartMemoryRepository()
	e := cart.NewEngine(&lineIDs{})

	before, err := r.Update(ctx, "s1", func(c model.Cart) (model.Cart, error) {
		return e.AddItem(c, beans(), 1, "Dark Roast")
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	got, err := r.Update(ctx, "s1", func(c model.Cart) (model.Cart, error) {
		return cart.Empty(), boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, got)

	stored, _ := r.Get(ctx, "s1")
	assert.Equal(t, before, stored)
}

func TestCartMemoryRepository_ClearDropsSession(t *testing.T) {
	ctx := context.Background()
	r := infraRepo.NewCartMemoryRepository()
	e := cart.NewEngine(&lineIDs{})

	_, err := r.Update(ctx, "s1", func(c model.Cart) (model.Cart, error) {
		return e.AddItem(c, beans(), 1, "Dark Roast")
	})
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())

	_, err = r.Update(ctx, "s1", func(model.Cart) (model.Cart, error) {
		return e.Clear(), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestCartMemoryRepository_ConcurrentAddsMerge(t *testing.T) {
	ctx := context.Background()
	r := infraRepo.NewCartMemoryRepository()
	e := cart.NewEngine(&lineIDs{})

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Update(ctx, "shared", func(c model.Cart) (model.Cart, error) {
				return e.AddItem(c, beans(), 1, "Medium Roast")
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := r.Get(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(workers), c.Items[0].Quantity)
	assert.Equal(t, "999.50", c.Subtotal.StringFixed(2))
}

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func (c *stepClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func addBeans(t *testing.T, r *infraRepo.CartMemoryRepository, e *cart.Engine, sessionID string) {
	t.Helper()
	_, err := r.Update(context.Background(), sessionID, func(c model.Cart) (model.Cart, error) {
		return e.AddItem(c, beans(), 1, "Dark Roast")
	})
	require.NoError(t, err)
}

func TestCartMemoryRepository_ExpiresIdleCarts(t *testing.T) {
	ctx := context.Background()
	clock := &stepClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := infraRepo.NewCartMemoryRepository(infraRepo.WithExpiry(time.Hour, clock))
	e := cart.NewEngine(&lineIDs{})

	addBeans(t, r, e, "s1")

	clock.advance(59 * time.Minute)
	c, err := r.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ItemCount)

	clock.advance(time.Minute)
	c, err = r.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, r.Len())
}

func TestCartMemoryRepository_UpdateRenewsExpiry(t *testing.T) {
	ctx := context.Background()
	clock := &stepClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := infraRepo.NewCartMemoryRepository(infraRepo.WithExpiry(time.Hour, clock))
	e := cart.NewEngine(&lineIDs{})

	addBeans(t, r, e, "s1")
	clock.advance(50 * time.Minute)
	addBeans(t, r, e, "s1")
	clock.advance(50 * time.Minute)

	c, err := r.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.ItemCount)
}

func TestCartMemoryRepository_UpdateSweepsAbandonedSessions(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := infraRepo.NewCartMemoryRepository(infraRepo.WithExpiry(time.Hour, clock))
	e := cart.NewEngine(&lineIDs{})

	for _, id := range []string{"a", "b", "c"} {
		addBeans(t, r, e, id)
	}
	require.Equal(t, 3, r.Len())

	clock.advance(2 * time.Hour)
	addBeans(t, r, e, "d")

	assert.Equal(t, 1, r.Len())
}

func TestCartMemoryRepository_WithoutExpiryKeepsCarts(t *testing.T) {
	r := infraRepo.NewCartMemoryRepository()
	e := cart.NewEngine(&lineIDs{})

	addBeans(t, r, e, "s1")

	c, err := r.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ItemCount)
}
