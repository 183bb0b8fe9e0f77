package handler

import (
	"strconv"
	"time"

	"github.com/brightsmile/booking-api/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"     validate:"required,oneof=admin patient"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin patient"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// --- Time slots ---

type createTimeSlotRequest struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	Duration  int       `json:"duration"   validate:"required,min=5,max=120"`
}

type timeSlotListResponse struct {
	Date  string                       `json:"date"`
	Slots []domain.TimeSlotWithDentist `json:"slots"`
}

// --- Appointments ---

type bookAppointmentRequest struct {
	TimeSlotID int64  `json:"time_slot_id" validate:"required,gt=0"`
	Notes      string `json:"notes"        validate:"max=500"`
}

type appointmentActionRequest struct {
	TimeSlotID int64 `json:"time_slot_id" validate:"omitempty,gt=0"`
}

type appointmentLinks struct {
	Self   string `json:"self"`
	Events string `json:"events"`
}

type appointmentResponse struct {
	*domain.Appointment
	Links appointmentLinks `json:"_links"`
}

func toAppointmentResponse(a *domain.Appointment) appointmentResponse {
	self := "/v1/appointments/" + strconv.FormatInt(a.ID, 10)
	return appointmentResponse{
		Appointment: a,
		Links:       appointmentLinks{Self: self, Events: self + "/events"},
	}
}
