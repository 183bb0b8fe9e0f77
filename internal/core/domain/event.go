package domain

import "time"

// AppointmentAction names a step of the booking workflow.
type AppointmentAction string

const (
	ActionBooked    AppointmentAction = "booked"
	ActionConfirmed AppointmentAction = "confirmed"
	ActionRejected  AppointmentAction = "rejected"
	ActionCancelled AppointmentAction = "cancelled"
)

// AppointmentEvent is an audit record of one workflow step.
type AppointmentEvent struct {
	ID            string            `json:"id"`
	AppointmentID int64             `json:"appointment_id"`
	TimeSlotID    int64             `json:"time_slot_id"`
	ActorID       int64             `json:"actor_id"`
	ActorRole     Role              `json:"actor_role"`
	Action        AppointmentAction `json:"action"`
	FromStatus    AppointmentStatus `json:"from_status,omitempty"`
	ToStatus      AppointmentStatus `json:"to_status"`
	OccurredAt    time.Time         `json:"occurred_at"`
}
