package ports

import (
	"context"
	"time"

	"github.com/brightsmile/booking-api/internal/core/domain"
)

// TimeSlotRepository defines persistence operations for time slots.
type TimeSlotRepository interface {
	// Create inserts slot unless its dentist already owns a slot that overlaps
	// it, in which case ErrConflict is returned. The check and the insert are
	// one atomic unit.
	Create(ctx context.Context, slot *domain.TimeSlot) error
	FindByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	// ListAvailableBetween returns available slots starting within [from, to],
	// ordered by start time ascending.
	ListAvailableBetween(ctx context.Context, from, to time.Time) ([]domain.TimeSlotWithDentist, error)
	// ListByDentist returns all of a dentist's slots, latest start first.
	ListByDentist(ctx context.Context, dentistID int64) ([]domain.TimeSlot, error)
	// Delete removes the slot; its appointments cascade.
	Delete(ctx context.Context, id int64) error
}
