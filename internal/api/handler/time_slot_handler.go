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

// TimeSlotHandler handles HTTP requests for dentist time slots.
// Calendar dates in queries are read in loc.
type TimeSlotHandler struct {
	service ports.TimeSlotService
	loc     *time.Location
}

func NewTimeSlotHandler(service ports.TimeSlotService, loc *time.Location) *TimeSlotHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TimeSlotHandler{service: service, loc: loc}
}

// ListAvailable handles GET /v1/time-slots?date=YYYY-MM-DD.
//
// @Summary      List bookable time slots for a day
// @Tags         time-slots
// @Produce      json
// @Param        date  query     string  true  "Calendar day (YYYY-MM-DD)"
// @Success      200   {object}  timeSlotListResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/time-slots [get]
func (h *TimeSlotHandler) ListAvailable(c echo.Context) error {
	raw := c.QueryParam("date")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	date, err := parseDate(raw, h.loc)
	if err != nil {
		return err
	}

	slots, err := h.service.ListAvailableForDate(c.Request().Context(), date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, timeSlotListResponse{Date: raw, Slots: slots})
}

// Create handles POST /v1/time-slots.
//
// @Summary      Publish a time slot
// @Tags         time-slots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTimeSlotRequest  true  "Slot start and duration in minutes"
// @Success      201   {object}  domain.TimeSlot
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/time-slots [post]
func (h *TimeSlotHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req createTimeSlotRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	slot, err := h.service.CreateTimeSlot(c.Request().Context(), id, ports.CreateTimeSlotInput{
		StartTime: req.StartTime,
		Duration:  req.Duration,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.TimeSlotConflictsTotal.Inc()
		}
		return err
	}

	metrics.TimeSlotsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, slot)
}

// ListMine handles GET /v1/dentist/time-slots.
//
// @Summary      List the caller's time slots
// @Tags         time-slots
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.TimeSlot
// @Failure      403  {object}  errorResponse
// @Router       /v1/dentist/time-slots [get]
func (h *TimeSlotHandler) ListMine(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	slots, err := h.service.ListDentistTimeSlots(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, slots)
}

// Delete handles DELETE /v1/time-slots/:id.
//
// @Summary      Delete a time slot
// @Tags         time-slots
// @Security     BearerAuth
// @Param        id   path  int  true  "Time slot id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/time-slots/{id} [delete]
func (h *TimeSlotHandler) Delete(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	slotID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteTimeSlot(c.Request().Context(), id, slotID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
