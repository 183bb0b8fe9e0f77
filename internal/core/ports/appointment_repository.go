package ports

import (
	"context"
	"time"

	"github.com/brightsmile/booking-api/internal/core/domain"
)

// DentistAppointmentsFilter narrows the dentist queue.
type DentistAppointmentsFilter struct {
	DentistID int64
	// Statuses to include; the service fills in the active ones when empty.
	Statuses []domain.AppointmentStatus
	// Optional: slot start within [From, To].
	From time.Time
	To   time.Time
}

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	// Book claims the slot and inserts appt in one atomic unit. When the slot
	// is missing or already taken it returns ErrSlotUnavailable and writes
	// nothing. On success appt.ID and timestamps are filled in.
	Book(ctx context.Context, appt *domain.Appointment) error
	// FindByID returns the appointment with DentistID populated from its slot.
	FindByID(ctx context.Context, id int64) (*domain.Appointment, error)
	// Transition applies t only if the appointment is still in t.From and
	// returns ErrInvalidState otherwise.
	Transition(ctx context.Context, t domain.Transition) error
	// ListByPatient returns a patient's appointments, newest first.
	ListByPatient(ctx context.Context, patientID int64) ([]domain.AppointmentDetail, error)
	// ListByDentist returns appointments on the dentist's slots, oldest first.
	ListByDentist(ctx context.Context, filter DentistAppointmentsFilter) ([]domain.AppointmentDetail, error)
}

// IdempotencyStore remembers which appointment a client key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, patientID int64, key string) (int64, bool, error)
	Remember(ctx context.Context, patientID int64, key string, appointmentID int64) error
}
