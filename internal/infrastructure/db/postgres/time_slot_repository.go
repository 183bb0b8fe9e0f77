package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/brightsmile/booking-api/internal/core/domain"
)

// overlapCondition is the SQL form of domain.Overlaps with $2/$3 as the new
// slot's start and end.
const overlapCondition = `start_time < $3 AND end_time > $2`

const slotColumns = `id, dentist_id, start_time, end_time, duration, is_available, created_at, updated_at`

type TimeSlotRepository struct {
	db *sql.DB
}

func NewTimeSlotRepository(db *sql.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

// Create serialises slot creation per dentist with a transaction-scoped
// advisory lock, so the overlap check and the insert see the same state.
func (r *TimeSlotRepository) Create(ctx context.Context, slot *domain.TimeSlot) error {
	return WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, slot.DentistID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		var overlapping bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM time_slots WHERE dentist_id = $1 AND `+overlapCondition+`)`,
			slot.DentistID, slot.StartTime, slot.EndTime,
		).Scan(&overlapping)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if overlapping {
			return domain.ErrConflict
		}

		query :=
			`INSERT INTO time_slots (dentist_id, start_time, end_time, duration, is_available)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, created_at, updated_at`
		err = tx.QueryRowContext(ctx, query,
			slot.DentistID, slot.StartTime, slot.EndTime, slot.Duration, slot.IsAvailable,
		).Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}

func (r *TimeSlotRepository) FindByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM time_slots WHERE id = $1`

	var s domain.TimeSlot
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.DentistID, &s.StartTime, &s.EndTime, &s.Duration, &s.IsAvailable, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTimeSlotNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &s, nil
}

func (r *TimeSlotRepository) ListAvailableBetween(ctx context.Context, from, to time.Time) ([]domain.TimeSlotWithDentist, error) {
	query :=
		`SELECT s.id, s.dentist_id, s.start_time, s.end_time, s.duration, s.is_available, s.created_at, s.updated_at,
		        u.id, u.name
		 FROM time_slots s
		 JOIN users u ON u.id = s.dentist_id
		 WHERE s.is_available = true AND s.start_time >= $1 AND s.start_time <= $2
		 ORDER BY s.start_time ASC, s.id ASC`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]domain.TimeSlotWithDentist, 0)
	for rows.Next() {
		var s domain.TimeSlotWithDentist
		if err := rows.Scan(
			&s.ID, &s.DentistID, &s.StartTime, &s.EndTime, &s.Duration, &s.IsAvailable, &s.CreatedAt, &s.UpdatedAt,
			&s.Dentist.ID, &s.Dentist.Name,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *TimeSlotRepository) ListByDentist(ctx context.Context, dentistID int64) ([]domain.TimeSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM time_slots WHERE dentist_id = $1 ORDER BY start_time DESC`

	rows, err := r.db.QueryContext(ctx, query, dentistID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]domain.TimeSlot, 0)
	for rows.Next() {
		var s domain.TimeSlot
		if err := rows.Scan(
			&s.ID, &s.DentistID, &s.StartTime, &s.EndTime, &s.Duration, &s.IsAvailable, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// Delete removes the slot. The foreign key cascades to its appointments.
func (r *TimeSlotRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrTimeSlotNotFound
	}
	return nil
}
