package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/brightsmile/booking-api/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// errorRule maps a domain sentinel to a status. An empty message means the
// wrapped error text is shown to the client.
type errorRule struct {
	target  error
	status  int
	message string
}

// Order matters: the first matching rule wins.
var errorRules = []errorRule{
	{domain.ErrConflict, http.StatusConflict, "time slot overlaps an existing slot"},
	{domain.ErrSlotUnavailable, http.StatusConflict, "time slot not available"},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	{domain.ErrInvalidState, http.StatusUnprocessableEntity, ""},
	{domain.ErrTimeSlotNotFound, http.StatusNotFound, "time slot not found"},
	{domain.ErrAppointmentNotFound, http.StatusNotFound, "appointment not found"},
	{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
	{domain.ErrNotFound, http.StatusNotFound, "not found"},
	{domain.ErrInvalidInput, http.StatusBadRequest, ""},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{domain.ErrUserExists, http.StatusConflict, "user already exists"},
}

// NewHTTPErrorHandler renders every error as {"error": "..."}. Store failures
// and unknown errors are logged and reported as a bare 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, msg := statusFor(err)
		if status == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("request failed")
		}
		_ = c.JSON(status, errorResponse{Error: msg})
	}
}

func statusFor(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}
	// ErrInternal may wrap a sentinel from the store; never leak it.
	if errors.Is(err, domain.ErrInternal) {
		return http.StatusInternalServerError, "internal server error"
	}
	for _, r := range errorRules {
		if !errors.Is(err, r.target) {
			continue
		}
		if r.message == "" {
			return r.status, err.Error()
		}
		return r.status, r.message
	}
	return http.StatusInternalServerError, "internal server error"
}
