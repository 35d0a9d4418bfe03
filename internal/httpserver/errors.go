package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rivenshop/storefront/internal/service"
)

// reason strips the sentinel prefix so the caller sees the message verbatim.
func reason(err error) string {
	msg := err.Error()
	for _, prefix := range []string{"validation: ", "not found: ", "conflict: "} {
		msg = strings.TrimPrefix(msg, prefix)
	}
	return msg
}

// serviceError maps service sentinels to HTTP statuses: validation 400,
// not-found 404, domain conflicts 409, everything else 500.
func serviceError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, reason(err))
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, reason(err))
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, reason(err))
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
