package service

import (
	"context"
	"fmt"
	"time"

	"github.com/brightsmile/booking-api/internal/core/domain"
	"github.com/brightsmile/booking-api/internal/core/ports"
)

type timeSlotService struct {
	repo ports.TimeSlotRepository
}

// NewTimeSlotService returns a TimeSlotService implementation.
func NewTimeSlotService(repo ports.TimeSlotRepository) ports.TimeSlotService {
	return &timeSlotService{repo: repo}
}

// CreateTimeSlot opens a new bookable slot for the calling dentist.
func (s *timeSlotService) CreateTimeSlot(ctx context.Context, id domain.Identity, in ports.CreateTimeSlotInput) (*domain.TimeSlot, error) {
	if !domain.HasRole(id, domain.RoleDentist) {
		return nil, fmt.Errorf("create time slot: %w", domain.ErrForbidden)
	}

	slot, err := domain.NewTimeSlot(id.UserID, in.StartTime, in.Duration)
	if err != nil {
		return nil, fmt.Errorf("create time slot: %w", err)
	}

	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, domain.Internal("create time slot", err)
	}
	return slot, nil
}

func (s *timeSlotService) ListAvailableForDate(ctx context.Context, date time.Time) ([]domain.TimeSlotWithDentist, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("list time slots: %w: date is required", domain.ErrInvalidInput)
	}
	from, to := domain.DayBounds(date, date.Location())

	slots, err := s.repo.ListAvailableBetween(ctx, from, to)
	if err != nil {
		return nil, domain.Internal("list time slots", err)
	}
	return slots, nil
}

func (s *timeSlotService) ListDentistTimeSlots(ctx context.Context, id domain.Identity) ([]domain.TimeSlot, error) {
	if !domain.HasRole(id, domain.RoleDentist) {
		return nil, fmt.Errorf("list dentist time slots: %w", domain.ErrForbidden)
	}

	slots, err := s.repo.ListByDentist(ctx, id.UserID)
	if err != nil {
		return nil, domain.Internal("list dentist time slots", err)
	}
	return slots, nil
}

// DeleteTimeSlot removes one of the caller's own slots together with its appointments.
func (s *timeSlotService) DeleteTimeSlot(ctx context.Context, id domain.Identity, slotID int64) error {
	slot, err := s.repo.FindByID(ctx, slotID)
	if err != nil {
		return domain.Internal("delete time slot", err)
	}
	if !domain.IsOwnerOfSlot(id, slot.DentistID) {
		return fmt.Errorf("delete time slot: %w", domain.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, slotID); err != nil {
		return domain.Internal("delete time slot", err)
	}
	return nil
}
