package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/brightsmile/booking-api/internal/core/domain"
	"github.com/brightsmile/booking-api/internal/core/ports"
)

type auditService struct {
	events       ports.EventRepository
	appointments ports.AppointmentRepository
	dedup        ports.DedupChecker
	log          zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(
	events ports.EventRepository,
	appointments ports.AppointmentRepository,
	dedup ports.DedupChecker,
	log zerolog.Logger,
) ports.AuditService {
	return &auditService{
		events:       events,
		appointments: appointments,
		dedup:        dedup,
		log:          log,
	}
}

// Record deduplicates and persists a single appointment event.
func (s *auditService) Record(ctx context.Context, event domain.AppointmentEvent) error {
	// 1. Idempotency check, duplicates are skipped silently.
	isDup, err := s.dedup.IsDuplicate(ctx, event.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", event.ID).Msg("dedup check failed, recording anyway")
	} else if isDup {
		s.log.Debug().Str("event_id", event.ID).Msg("duplicate event skipped")
		return nil
	}

	// 2. Persist.
	if err := s.events.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record event: %w", err)
	}

	// 3. Mark after the write so a failed insert can be retried.
	if err := s.dedup.Mark(ctx, event.ID); err != nil {
		s.log.Warn().Err(err).Str("event_id", event.ID).Msg("failed to set dedup key")
	}

	s.log.Info().
		Int64("appointment_id", event.AppointmentID).
		Str("action", string(event.Action)).
		Str("to_status", string(event.ToStatus)).
		Int64("actor_id", event.ActorID).
		Msg("appointment event recorded")

	return nil
}

// History returns the audit trail of an appointment visible to the caller.
func (s *auditService) History(ctx context.Context, id domain.Identity, appointmentID int64) ([]domain.AppointmentEvent, error) {
	appt, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, domain.Internal("appointment history", err)
	}
	if !domain.CanManageAppointment(id, appt) {
		return nil, fmt.Errorf("appointment history: %w", domain.ErrForbidden)
	}

	events, err := s.events.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, domain.Internal("appointment history", err)
	}
	return events, nil
}
