package usecase_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

type SessionIssuerMock struct{ mock.Mock }

func (m *SessionIssuerMock) Issue(sessionID string, email string, now time.Time) (string, time.Time, error) {
	args := m.Called(sessionID, email, now)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// manualScheduler holds scheduled work until the test fires it.
type manualScheduler struct {
	delays []time.Duration
	funcs  []func()
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) {
	s.delays = append(s.delays, d)
	s.funcs = append(s.funcs, f)
}

func (s *manualScheduler) fireAll() {
	for _, f := range s.funcs {
		f()
	}
	s.funcs = nil
}

// seqIDs issues "item-1", "item-2", ...
type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return "item-" + strconv.Itoa(g.n)
}

// =====================
// Fixtures
// =====================

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func yirgacheffe() model.Product {
	return model.Product{
		ID:           1,
		Name:         "Ethiopian Yirgacheffe",
		UnitPrice:    price("24.99"),
		RoastOptions: []string{"Light Roast", "Medium Roast", "Medium-Dark Roast"},
		Origin:       "Ethiopia",
		Flavor:       []string{"Floral", "Citrus", "Tea-like", "Bright"},
	}
}

func supremo() model.Product {
	return model.Product{
		ID:           2,
		Name:         "Colombian Supremo",
		UnitPrice:    price("22.99"),
		RoastOptions: []string{"Light Roast", "Medium Roast", "Dark Roast"},
		Origin:       "Colombia",
		Flavor:       []string{"Chocolate", "Caramel", "Nutty", "Balanced"},
	}
}

func antigua() model.Product {
	return model.Product{
		ID:           3,
		Name:         "Guatemala Antigua",
		UnitPrice:    price("26.99"),
		RoastOptions: []string{"Medium Roast", "Medium-Dark Roast", "Dark Roast"},
		Origin:       "Guatemala",
		Flavor:       []string{"Smoky", "Spicy", "Cocoa", "Bold"},
	}
}

func sidamo() model.Product {
	return model.Product{
		ID:           4,
		Name:         "Ethiopian Sidamo",
		UnitPrice:    price("23.99"),
		RoastOptions: []string{"Light Roast", "Medium Roast"},
		Origin:       "Ethiopia",
		Flavor:       []string{"Berry", "Wine", "Chocolate"},
	}
}

func catalog() []model.Product {
	return []model.Product{yirgacheffe(), supremo(), antigua(), sidamo()}
}

// =====================
// Assertions
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func assertHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "want HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
	assert.Equal(t, message, he.Message)
}
