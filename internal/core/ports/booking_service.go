package ports

import (
	"context"
	"time"

	"github.com/brightsmile/booking-api/internal/core/domain"
)

// CreateTimeSlotInput is the DTO passed from the transport layer to TimeSlotService.
type CreateTimeSlotInput struct {
	StartTime time.Time
	Duration  int // minutes
}

// TimeSlotService defines use-case operations for time slots.
type TimeSlotService interface {
	CreateTimeSlot(ctx context.Context, id domain.Identity, in CreateTimeSlotInput) (*domain.TimeSlot, error)
	// ListAvailableForDate returns bookable slots on the calendar day of date,
	// evaluated in date's location.
	ListAvailableForDate(ctx context.Context, date time.Time) ([]domain.TimeSlotWithDentist, error)
	ListDentistTimeSlots(ctx context.Context, id domain.Identity) ([]domain.TimeSlot, error)
	DeleteTimeSlot(ctx context.Context, id domain.Identity, slotID int64) error
}

// BookAppointmentInput carries a patient's booking request.
type BookAppointmentInput struct {
	TimeSlotID     int64
	Notes          string
	IdempotencyKey string
}

// BookingResult is returned by Book.
type BookingResult struct {
	Appointment *domain.Appointment
	// AlreadyExisted is true when the Idempotency-Key matched an earlier booking.
	AlreadyExisted bool
}

// ListDentistAppointmentsInput carries optional filters for the dentist queue.
type ListDentistAppointmentsInput struct {
	Status string    // empty = active appointments
	Date   time.Time // zero = any day
}

// AppointmentService defines the booking workflow.
type AppointmentService interface {
	Book(ctx context.Context, id domain.Identity, in BookAppointmentInput) (*BookingResult, error)
	// Cancel and Reject accept timeSlotID = 0 when the caller does not know it.
	Cancel(ctx context.Context, id domain.Identity, appointmentID, timeSlotID int64) error
	Confirm(ctx context.Context, id domain.Identity, appointmentID int64) error
	Reject(ctx context.Context, id domain.Identity, appointmentID, timeSlotID int64) error
	ListPatientAppointments(ctx context.Context, id domain.Identity) ([]domain.AppointmentDetail, error)
	ListDentistAppointments(ctx context.Context, id domain.Identity, in ListDentistAppointmentsInput) ([]domain.AppointmentDetail, error)
}

// AuditService records and serves the appointment audit trail.
type AuditService interface {
	Record(ctx context.Context, event domain.AppointmentEvent) error
	History(ctx context.Context, id domain.Identity, appointmentID int64) ([]domain.AppointmentEvent, error)
}
