package domain

import (
	"fmt"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusRejected  AppointmentStatus = "rejected"
)

// InitialStatus is the status every new booking starts in.
const InitialStatus = StatusPending

// validTransitions defines the allowed state machine transitions.
// Cancelled and rejected are terminal.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsActive reports whether an appointment in this status holds its slot.
func (s AppointmentStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusRejected
}

// ParseAppointmentStatus converts raw input into a known status.
func ParseAppointmentStatus(raw string) (AppointmentStatus, error) {
	switch s := AppointmentStatus(raw); s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusRejected:
		return s, nil
	}
	return "", fmt.Errorf("%w: unknown appointment status %q", ErrInvalidInput, raw)
}

// Appointment is a patient's claim on a time slot.
// DentistID is denormalised from the slot on reads so ownership can be
// checked without a second lookup.
type Appointment struct {
	ID         int64             `json:"id"`
	TimeSlotID int64             `json:"time_slot_id"`
	PatientID  int64             `json:"patient_id"`
	DentistID  int64             `json:"-"`
	Status     AppointmentStatus `json:"status"`
	Notes      string            `json:"notes,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// AppointmentDetail is an appointment joined with its slot, dentist and patient.
type AppointmentDetail struct {
	Appointment
	TimeSlot TimeSlot `json:"time_slot"`
	Dentist  UserRef  `json:"dentist"`
	Patient  UserRef  `json:"patient"`
}

// Transition is one atomic status change. The store applies it only while the
// appointment is still in From, and frees the slot when ReleaseSlot is set.
type Transition struct {
	AppointmentID int64
	TimeSlotID    int64
	From          AppointmentStatus
	To            AppointmentStatus
	ReleaseSlot   bool
}

// NewTransition validates the move from a's current status to next.
func NewTransition(a *Appointment, next AppointmentStatus) (Transition, error) {
	if !a.Status.CanTransitionTo(next) {
		return Transition{}, fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidState, a.Status, next)
	}
	return Transition{
		AppointmentID: a.ID,
		TimeSlotID:    a.TimeSlotID,
		From:          a.Status,
		To:            next,
		ReleaseSlot:   !next.IsActive(),
	}, nil
}
