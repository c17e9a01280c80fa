package apperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Status maps an error kind to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// JSON writes err as {"error": msg}. Store failures are logged and hidden
// behind a generic message.
func JSON(c echo.Context, err error) error {
	status := Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("[http] %s %s: %v", c.Request().Method, c.Path(), err)
		msg = "internal error"
	}
	return c.JSON(status, map[string]string{"error": msg})
}
