package middleware

import (
	"net/http"
	"time"

	"storefront/internal/infra/token"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const SessionCookieName = "sid"

const (
	CtxSessionIDKey    = "session_id"    // string
	CtxSessionEmailKey = "session_email" // string, empty when signed out
)

type SessionTokens interface {
	Issue(sessionID string, email string, now time.Time) (string, time.Time, error)
	Parse(raw string, now time.Time) (token.Session, error)
}

type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

// CookieWriter sets the session cookie with the configured flags.
type CookieWriter struct {
	Secure bool
}

func (w CookieWriter) Write(c echo.Context, value string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   w.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
	})
}

// Session resolves the shopper session from the sid cookie. A missing,
// expired or tampered cookie starts a new anonymous session.
func Session(tokens SessionTokens, ids IDGenerator, clock Clock, cookies CookieWriter, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := clock.Now()

			if ck, err := c.Cookie(SessionCookieName); err == nil && ck.Value != "" {
				s, err := tokens.Parse(ck.Value, now)
				if err == nil {
					c.Set(CtxSessionIDKey, s.ID)
					c.Set(CtxSessionEmailKey, s.Email)
					return next(c)
				}
				log.Debug("session cookie rejected", zap.Error(err))
			}

			id := ids.NewID()
			raw, exp, err := tokens.Issue(id, "", now)
			if err != nil {
				log.Error("issue session", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}
			cookies.Write(c, raw, exp)

			c.Set(CtxSessionIDKey, id)
			c.Set(CtxSessionEmailKey, "")
			return next(c)
		}
	}
}

// SessionID returns the id resolved by Session.
func SessionID(c echo.Context) (string, bool) {
	id, ok := c.Get(CtxSessionIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func SessionEmail(c echo.Context) string {
	email, _ := c.Get(CtxSessionEmailKey).(string)
	return email
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
