package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/brightsmile/booking-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"conflict", fmt.Errorf("create time slot: %w", domain.ErrConflict), http.StatusConflict},
		{"slot unavailable", fmt.Errorf("book appointment: %w", domain.ErrSlotUnavailable), http.StatusConflict},
		{"forbidden", fmt.Errorf("confirm appointment: %w", domain.ErrForbidden), http.StatusForbidden},
		{"invalid state", fmt.Errorf("confirm appointment: %w", domain.ErrInvalidState), http.StatusUnprocessableEntity},
		{"slot not found", fmt.Errorf("delete time slot: %w", domain.ErrTimeSlotNotFound), http.StatusNotFound},
		{"appointment not found", domain.ErrAppointmentNotFound, http.StatusNotFound},
		{"invalid input", fmt.Errorf("%w: bad date", domain.ErrInvalidInput), http.StatusBadRequest},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"internal", domain.Internal("book appointment", errors.New("db down")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"echo error", echo.NewHTTPError(http.StatusTooManyRequests, "slow down"), http.StatusTooManyRequests},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/v1/appointments", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error == "" {
				t.Fatal("expected error message in body")
			}
		})
	}
}

func TestHTTPErrorHandler_InternalDetailsHidden(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/patient/appointments", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(log)(domain.Internal("list patient appointments", errors.New("pq: password leak")), c)

	if strings.Contains(rec.Body.String(), "password leak") {
		t.Fatalf("internal detail leaked to client: %s", rec.Body.String())
	}
	if !strings.Contains(buf.String(), "password leak") {
		t.Fatalf("expected cause to be logged, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"method":"GET"`) {
		t.Fatalf("expected method in log, got %q", buf.String())
	}
}

func TestHTTPErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.NoContent(http.StatusNoContent)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected committed status kept, got %d", rec.Code)
	}
}
