package handler

import (
	"net/http"

	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
)

type SessionResponse struct {
	Email    string `json:"email"`
	SignedIn bool   `json:"signed_in"`
}

type SessionHandler struct{}

// DI
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

func (h *SessionHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.health)
	e.GET("/session", h.current)
}

func (h *SessionHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SessionHandler) current(c echo.Context) error {
	email := middleware.SessionEmail(c)
	return c.JSON(http.StatusOK, SessionResponse{Email: email, SignedIn: email != ""})
}
