package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brightsmile/booking-api/internal/core/domain"
)

const eventsCollection = "appointment_events"

// eventDocument is the stored shape of a domain.AppointmentEvent. The event id
// doubles as _id so a replayed insert is rejected by the primary key.
type eventDocument struct {
	ID            string    `bson:"_id"`
	AppointmentID int64     `bson:"appointment_id"`
	TimeSlotID    int64     `bson:"time_slot_id"`
	ActorID       int64     `bson:"actor_id"`
	ActorRole     string    `bson:"actor_role"`
	Action        string    `bson:"action"`
	FromStatus    string    `bson:"from_status,omitempty"`
	ToStatus      string    `bson:"to_status"`
	OccurredAt    time.Time `bson:"occurred_at"`
	RecordedAt    time.Time `bson:"recorded_at"`
}

// EventRepository keeps the appointment audit trail in MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(eventsCollection)}
}

// Insert stores the event. Inserting an id that already exists is a no-op.
func (r *EventRepository) Insert(ctx context.Context, event *domain.AppointmentEvent) error {
	doc := eventDocument{
		ID:            event.ID,
		AppointmentID: event.AppointmentID,
		TimeSlotID:    event.TimeSlotID,
		ActorID:       event.ActorID,
		ActorRole:     string(event.ActorRole),
		Action:        string(event.Action),
		FromStatus:    string(event.FromStatus),
		ToStatus:      string(event.ToStatus),
		OccurredAt:    event.OccurredAt.UTC(),
		RecordedAt:    time.Now().UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert appointment event: %w", err)
	}
	return nil
}

// ListByAppointment returns the events of one appointment, oldest first.
func (r *EventRepository) ListByAppointment(ctx context.Context, appointmentID int64) ([]domain.AppointmentEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.col.Find(ctx, bson.M{"appointment_id": appointmentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find appointment events: %w", err)
	}
	defer cur.Close(ctx)

	events := make([]domain.AppointmentEvent, 0)
	for cur.Next(ctx) {
		var doc eventDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode appointment event: %w", err)
		}
		events = append(events, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointment events: %w", err)
	}
	return events, nil
}

// EnsureIndexes creates the indexes the history query relies on.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "appointment_id", Value: 1}, {Key: "occurred_at", Value: 1}}},
		{Keys: bson.D{{Key: "actor_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (d eventDocument) toDomain() domain.AppointmentEvent {
	return domain.AppointmentEvent{
		ID:            d.ID,
		AppointmentID: d.AppointmentID,
		TimeSlotID:    d.TimeSlotID,
		ActorID:       d.ActorID,
		ActorRole:     domain.Role(d.ActorRole),
		Action:        domain.AppointmentAction(d.Action),
		FromStatus:    domain.AppointmentStatus(d.FromStatus),
		ToStatus:      domain.AppointmentStatus(d.ToStatus),
		OccurredAt:    d.OccurredAt,
	}
}
