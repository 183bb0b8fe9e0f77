package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brightsmile/booking-api/internal/core/domain"
	"github.com/brightsmile/booking-api/internal/core/ports"
)

type appointmentService struct {
	repo      ports.AppointmentRepository
	idem      ports.IdempotencyStore
	publisher ports.EventPublisher
	now       func() time.Time
}

// NewAppointmentService returns an AppointmentService implementation.
// idem and publisher may be nil; booking then skips replay and auditing.
func NewAppointmentService(
	repo ports.AppointmentRepository,
	idem ports.IdempotencyStore,
	publisher ports.EventPublisher,
) ports.AppointmentService {
	return &appointmentService{
		repo:      repo,
		idem:      idem,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Book claims a slot for the calling patient. Losing a race for the slot is
// reported as ErrSlotUnavailable and never retried.
func (s *appointmentService) Book(ctx context.Context, id domain.Identity, in ports.BookAppointmentInput) (*ports.BookingResult, error) {
	if !domain.HasRole(id, domain.RolePatient) {
		return nil, fmt.Errorf("book appointment: %w", domain.ErrForbidden)
	}
	if in.TimeSlotID <= 0 {
		return nil, fmt.Errorf("book appointment: %w: time slot id is required", domain.ErrInvalidInput)
	}

	if replay, ok := s.replay(ctx, id, in.IdempotencyKey); ok {
		return replay, nil
	}

	appt := &domain.Appointment{
		TimeSlotID: in.TimeSlotID,
		PatientID:  id.UserID,
		Status:     domain.InitialStatus,
		Notes:      in.Notes,
	}
	if err := s.repo.Book(ctx, appt); err != nil {
		return nil, domain.Internal("book appointment", err)
	}

	if s.idem != nil && in.IdempotencyKey != "" {
		// A failed write only loses replay protection for this key.
		_ = s.idem.Remember(ctx, id.UserID, in.IdempotencyKey, appt.ID)
	}

	s.publish(id, appt.ID, appt.TimeSlotID, domain.ActionBooked, "", appt.Status)
	return &ports.BookingResult{Appointment: appt}, nil
}

// replay returns the appointment an earlier request with the same key created.
func (s *appointmentService) replay(ctx context.Context, id domain.Identity, key string) (*ports.BookingResult, bool) {
	if s.idem == nil || key == "" {
		return nil, false
	}
	apptID, found, err := s.idem.Lookup(ctx, id.UserID, key)
	if err != nil || !found {
		return nil, false
	}
	existing, err := s.repo.FindByID(ctx, apptID)
	if err != nil || existing.PatientID != id.UserID {
		return nil, false
	}
	return &ports.BookingResult{Appointment: existing, AlreadyExisted: true}, true
}

// Cancel frees the slot of an active appointment. The patient on the
// appointment and the dentist owning its slot may cancel.
func (s *appointmentService) Cancel(ctx context.Context, id domain.Identity, appointmentID, timeSlotID int64) error {
	appt, err := s.load(ctx, appointmentID, timeSlotID)
	if err != nil {
		return fmt.Errorf("cancel appointment: %w", err)
	}
	if !domain.CanManageAppointment(id, appt) {
		return fmt.Errorf("cancel appointment: %w", domain.ErrForbidden)
	}
	return s.transition(ctx, id, appt, domain.StatusCancelled, domain.ActionCancelled, "cancel appointment")
}

// Confirm accepts a pending appointment on one of the caller's slots.
func (s *appointmentService) Confirm(ctx context.Context, id domain.Identity, appointmentID int64) error {
	appt, err := s.load(ctx, appointmentID, 0)
	if err != nil {
		return fmt.Errorf("confirm appointment: %w", err)
	}
	if !domain.IsOwnerOfSlot(id, appt.DentistID) {
		return fmt.Errorf("confirm appointment: %w", domain.ErrForbidden)
	}
	if appt.Status != domain.StatusPending {
		return fmt.Errorf("confirm appointment: %w: appointment is %s", domain.ErrInvalidState, appt.Status)
	}
	return s.transition(ctx, id, appt, domain.StatusConfirmed, domain.ActionConfirmed, "confirm appointment")
}

// Reject declines a pending appointment and makes its slot bookable again.
func (s *appointmentService) Reject(ctx context.Context, id domain.Identity, appointmentID, timeSlotID int64) error {
	appt, err := s.load(ctx, appointmentID, timeSlotID)
	if err != nil {
		return fmt.Errorf("reject appointment: %w", err)
	}
	if !domain.IsOwnerOfSlot(id, appt.DentistID) {
		return fmt.Errorf("reject appointment: %w", domain.ErrForbidden)
	}
	if appt.Status != domain.StatusPending {
		return fmt.Errorf("reject appointment: %w: appointment is %s", domain.ErrInvalidState, appt.Status)
	}
	return s.transition(ctx, id, appt, domain.StatusRejected, domain.ActionRejected, "reject appointment")
}

func (s *appointmentService) ListPatientAppointments(ctx context.Context, id domain.Identity) ([]domain.AppointmentDetail, error) {
	if !domain.HasRole(id, domain.RolePatient) {
		return nil, fmt.Errorf("list patient appointments: %w", domain.ErrForbidden)
	}
	items, err := s.repo.ListByPatient(ctx, id.UserID)
	if err != nil {
		return nil, domain.Internal("list patient appointments", err)
	}
	return items, nil
}

// ListDentistAppointments returns the queue of appointments on the caller's
// slots. Without a status filter only active appointments are listed.
func (s *appointmentService) ListDentistAppointments(ctx context.Context, id domain.Identity, in ports.ListDentistAppointmentsInput) ([]domain.AppointmentDetail, error) {
	if !domain.HasRole(id, domain.RoleDentist) {
		return nil, fmt.Errorf("list dentist appointments: %w", domain.ErrForbidden)
	}

	filter := ports.DentistAppointmentsFilter{
		DentistID: id.UserID,
		Statuses:  []domain.AppointmentStatus{domain.StatusPending, domain.StatusConfirmed},
	}
	if in.Status != "" {
		status, err := domain.ParseAppointmentStatus(in.Status)
		if err != nil {
			return nil, fmt.Errorf("list dentist appointments: %w", err)
		}
		filter.Statuses = []domain.AppointmentStatus{status}
	}
	if !in.Date.IsZero() {
		filter.From, filter.To = domain.DayBounds(in.Date, in.Date.Location())
	}

	items, err := s.repo.ListByDentist(ctx, filter)
	if err != nil {
		return nil, domain.Internal("list dentist appointments", err)
	}
	return items, nil
}

// load fetches the appointment and, when the caller named a slot, checks
// that the appointment sits on it.
func (s *appointmentService) load(ctx context.Context, appointmentID, timeSlotID int64) (*domain.Appointment, error) {
	appt, err := s.repo.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, domain.Internal("load appointment", err)
	}
	if timeSlotID != 0 && appt.TimeSlotID != timeSlotID {
		return nil, fmt.Errorf("%w: appointment %d is not on time slot %d", domain.ErrInvalidInput, appointmentID, timeSlotID)
	}
	return appt, nil
}

func (s *appointmentService) transition(
	ctx context.Context,
	id domain.Identity,
	appt *domain.Appointment,
	next domain.AppointmentStatus,
	action domain.AppointmentAction,
	op string,
) error {
	t, err := domain.NewTransition(appt, next)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.Transition(ctx, t); err != nil {
		return domain.Internal(op, err)
	}

	s.publish(id, appt.ID, appt.TimeSlotID, action, t.From, t.To)
	return nil
}

func (s *appointmentService) publish(
	id domain.Identity,
	appointmentID, timeSlotID int64,
	action domain.AppointmentAction,
	from, to domain.AppointmentStatus,
) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(domain.AppointmentEvent{
		ID:            uuid.NewString(),
		AppointmentID: appointmentID,
		TimeSlotID:    timeSlotID,
		ActorID:       id.UserID,
		ActorRole:     id.Role,
		Action:        action,
		FromStatus:    from,
		ToStatus:      to,
		OccurredAt:    s.now(),
	})
}
