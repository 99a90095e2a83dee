package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
)

// Mock login/signup. Success re-issues the session cookie with the email.
type AuthHandler struct {
	uc      *usecase.AuthUsecase
	cookies middleware.CookieWriter
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase, cookies middleware.CookieWriter) *AuthHandler {
	return &AuthHandler{uc: uc, cookies: cookies}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/auth")

	g.POST("/login", h.login)
	g.POST("/signup", h.signup)
	g.POST("/logout", h.logout)
	g.POST("/:form/validate", h.validate)
}

func (h *AuthHandler) login(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
	}

	var req validator.LoginForm
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, tok, err := h.uc.Login(c.Request().Context(), sid, req)
	if err != nil {
		return writeError(c, err)
	}
	h.cookies.Write(c, tok.Value, tok.ExpiresAt)

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) signup(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
	}

	var req validator.SignupForm
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, tok, err := h.uc.Signup(c.Request().Context(), sid, req)
	if err != nil {
		return writeError(c, err)
	}
	h.cookies.Write(c, tok.Value, tok.ExpiresAt)

	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) logout(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
	}

	tok, err := h.uc.Logout(c.Request().Context(), sid)
	if err != nil {
		return writeError(c, err)
	}
	h.cookies.Write(c, tok.Value, tok.ExpiresAt)

	return c.NoContent(http.StatusNoContent)
}

// Realtime field feedback for login, signup and payment.
func (h *AuthHandler) validate(c echo.Context) error {
	var req usecase.PreviewInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Preview(c.Request().Context(), c.Param("form"), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
