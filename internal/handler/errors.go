package handler

import (
	"errors"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries the message for every rejected field.
type ValidationErrorResponse struct {
	Error  string                `json:"error"`
	Fields validator.FieldErrors `json:"fields"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	var verr *validator.Error
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, ValidationErrorResponse{Error: "validation error", Fields: verr.Fields})
	}

	//500
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func getSessionIDFromContext(c echo.Context) (string, bool) {
	return middleware.SessionID(c)
}
