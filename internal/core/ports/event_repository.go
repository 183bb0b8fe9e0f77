package ports

import (
	"context"

	"github.com/brightsmile/booking-api/internal/core/domain"
)

// EventRepository persists the appointment audit trail.
type EventRepository interface {
	Insert(ctx context.Context, event *domain.AppointmentEvent) error
	// ListByAppointment returns events in the order they occurred.
	ListByAppointment(ctx context.Context, appointmentID int64) ([]domain.AppointmentEvent, error)
}

// DedupChecker abstracts the idempotency store for audit events (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

// EventPublisher hands events to the asynchronous audit pipeline.
type EventPublisher interface {
	Publish(event domain.AppointmentEvent)
}
