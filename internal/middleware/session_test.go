package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/infra/token"
	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var now = time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)

type fixedIDs struct{ id string }

func (g fixedIDs) NewID() string { return g.id }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seen struct {
	id    string
	email string
}

func newEcho(tokens *token.JWT, got *seen) *echo.Echo {
	e := echo.New()
	e.Use(middleware.Session(tokens, fixedIDs{id: "fresh"}, fixedClock{t: now}, middleware.CookieWriter{Secure: true}, zap.NewNop()))
	e.GET("/", func(c echo.Context) error {
		got.id, _ = middleware.SessionID(c)
		got.email = middleware.SessionEmail(c)
		return c.NoContent(http.StatusNoContent)
	})
	return e
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			return ck
		}
	}
	return nil
}

func TestSession_StartsNewSession(t *testing.T) {
	tokens := token.NewJWT("secret", time.Hour)
	var got seen
	e := newEcho(tokens, &got)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "fresh", got.id)
	assert.Empty(t, got.email)

	ck := sessionCookie(rec)
	require.NotNil(t, ck)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, "/", ck.Path)

	s, err := tokens.Parse(ck.Value, now)
	require.NoError(t, err)
	assert.Equal(t, "fresh", s.ID)
}

func TestSession_KeepsValidSession(t *testing.T) {
	tokens := token.NewJWT("secret", time.Hour)
	raw, _, err := tokens.Issue("existing", "ada@example.com", now.Add(-time.Minute))
	require.NoError(t, err)

	var got seen
	e := newEcho(tokens, &got)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: raw})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "existing", got.id)
	assert.Equal(t, "ada@example.com", got.email)
	assert.Nil(t, sessionCookie(rec), "a valid session is not re-issued")
}

func TestSession_ReplacesBadCookie(t *testing.T) {
	tokens := token.NewJWT("secret", time.Hour)
	expired, _, err := tokens.Issue("old", "", now.Add(-2*time.Hour))
	require.NoError(t, err)
	forged, _, err := token.NewJWT("other", time.Hour).Issue("victim", "", now)
	require.NoError(t, err)

	for name, raw := range map[string]string{"expired": expired, "forged": forged, "garbage": "abc"} {
		t.Run(name, func(t *testing.T) {
			var got seen
			e := newEcho(tokens, &got)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: raw})
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, "fresh", got.id)
			assert.NotNil(t, sessionCookie(rec))
		})
	}
}

func TestSessionID_MissingFromContext(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := middleware.SessionID(c)
	assert.False(t, ok)
	assert.Empty(t, middleware.SessionEmail(c))
}
