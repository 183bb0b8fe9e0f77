package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/brightsmile/booking-api/internal/api/metrics"
	"github.com/brightsmile/booking-api/internal/core/domain"
	"github.com/brightsmile/booking-api/internal/core/ports"
)

const (
	headerIdempotencyKey = "Idempotency-Key"
	headerReplayed       = "Idempotent-Replayed"
	maxIdempotencyKeyLen = 128
)

// AppointmentHandler handles the booking workflow endpoints.
type AppointmentHandler struct {
	service ports.AppointmentService
	audit   ports.AuditService
	loc     *time.Location
}

func NewAppointmentHandler(service ports.AppointmentService, audit ports.AuditService, loc *time.Location) *AppointmentHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AppointmentHandler{service: service, audit: audit, loc: loc}
}

// Book handles POST /v1/appointments.
//
// @Summary      Book a time slot
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                  false  "Replays the earlier booking made with the same key"
// @Param        body             body      bookAppointmentRequest  true   "Slot to book"
// @Success      201              {object}  appointmentResponse
// @Success      200              {object}  appointmentResponse  "replayed booking"
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /v1/appointments [post]
func (h *AppointmentHandler) Book(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req bookAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.BookingsTotal.WithLabelValues("invalid").Inc()
		return err
	}
	key := c.Request().Header.Get(headerIdempotencyKey)
	if len(key) > maxIdempotencyKeyLen {
		metrics.BookingsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "idempotency key too long")
	}

	result, err := h.service.Book(c.Request().Context(), id, ports.BookAppointmentInput{
		TimeSlotID:     req.TimeSlotID,
		Notes:          req.Notes,
		IdempotencyKey: key,
	})
	if err != nil {
		metrics.BookingsTotal.WithLabelValues(bookingResult(err)).Inc()
		return err
	}

	if result.AlreadyExisted {
		metrics.BookingsTotal.WithLabelValues("replayed").Inc()
		c.Response().Header().Set(headerReplayed, "true")
		return c.JSON(http.StatusOK, toAppointmentResponse(result.Appointment))
	}
	metrics.BookingsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, toAppointmentResponse(result.Appointment))
}

func bookingResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrSlotUnavailable):
		return "unavailable"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}

// Cancel handles POST /v1/appointments/:id/cancel.
//
// @Summary      Cancel an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true   "Appointment id"
// @Param        body  body      appointmentActionRequest  false  "Optional slot check"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	return h.act(c, domain.StatusCancelled, func(id domain.Identity, apptID, slotID int64) error {
		return h.service.Cancel(c.Request().Context(), id, apptID, slotID)
	})
}

// Confirm handles POST /v1/appointments/:id/confirm.
//
// @Summary      Confirm a pending appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Appointment id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/appointments/{id}/confirm [post]
func (h *AppointmentHandler) Confirm(c echo.Context) error {
	return h.act(c, domain.StatusConfirmed, func(id domain.Identity, apptID, _ int64) error {
		return h.service.Confirm(c.Request().Context(), id, apptID)
	})
}

// Reject handles POST /v1/appointments/:id/reject.
//
// @Summary      Reject a pending appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true   "Appointment id"
// @Param        body  body      appointmentActionRequest  false  "Optional slot check"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/appointments/{id}/reject [post]
func (h *AppointmentHandler) Reject(c echo.Context) error {
	return h.act(c, domain.StatusRejected, func(id domain.Identity, apptID, slotID int64) error {
		return h.service.Reject(c.Request().Context(), id, apptID, slotID)
	})
}

// act runs one status transition and reports it.
func (h *AppointmentHandler) act(c echo.Context, to domain.AppointmentStatus, run func(domain.Identity, int64, int64) error) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	apptID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req appointmentActionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := run(id, apptID, req.TimeSlotID); err != nil {
		return err
	}

	metrics.AppointmentTransitionsTotal.WithLabelValues(string(to)).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "appointment " + string(to)})
}

// ListForPatient handles GET /v1/patient/appointments.
//
// @Summary      List the caller's appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.AppointmentDetail
// @Failure      403  {object}  errorResponse
// @Router       /v1/patient/appointments [get]
func (h *AppointmentHandler) ListForPatient(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListPatientAppointments(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ListForDentist handles GET /v1/dentist/appointments.
//
// @Summary      List appointments on the caller's slots
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "pending, confirmed, cancelled or rejected"
// @Param        date    query     string  false  "Calendar day of the slot (YYYY-MM-DD)"
// @Success      200     {array}   domain.AppointmentDetail
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /v1/dentist/appointments [get]
func (h *AppointmentHandler) ListForDentist(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	in := ports.ListDentistAppointmentsInput{Status: c.QueryParam("status")}
	if raw := c.QueryParam("date"); raw != "" {
		if in.Date, err = parseDate(raw, h.loc); err != nil {
			return err
		}
	}

	items, err := h.service.ListDentistAppointments(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Events handles GET /v1/appointments/:id/events.
//
// @Summary      Audit trail of an appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Appointment id"
// @Success      200  {array}   domain.AppointmentEvent
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/appointments/{id}/events [get]
func (h *AppointmentHandler) Events(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	apptID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	events, err := h.audit.History(c.Request().Context(), id, apptID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
