package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/brightsmile/booking-api/internal/core/domain"
	"github.com/brightsmile/booking-api/internal/core/ports"
)

const detailSelect = `SELECT a.id, a.time_slot_id, a.patient_id, a.status, a.notes, a.created_at, a.updated_at,
        s.id, s.dentist_id, s.start_time, s.end_time, s.duration, s.is_available, s.created_at, s.updated_at,
        d.id, d.name, d.email,
        p.id, p.name, p.email
 FROM appointments a
 JOIN time_slots s ON s.id = a.time_slot_id
 JOIN users d ON d.id = s.dentist_id
 JOIN users p ON p.id = a.patient_id`

type AppointmentRepository struct {
	db *sql.DB
}

func NewAppointmentRepository(db *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Book uses the availability flag as a compare-and-swap gate: only the
// transaction that flips it from true to false may insert the appointment.
func (r *AppointmentRepository) Book(ctx context.Context, appt *domain.Appointment) error {
	return WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE time_slots SET is_available = false, updated_at = now()
			 WHERE id = $1 AND is_available = true`,
			appt.TimeSlotID,
		)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if n == 0 {
			return domain.ErrSlotUnavailable
		}

		query :=
			`INSERT INTO appointments (time_slot_id, patient_id, status, notes)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, created_at, updated_at`
		err = tx.QueryRowContext(ctx, query,
			appt.TimeSlotID, appt.PatientID, string(appt.Status), nullString(appt.Notes),
		).Scan(&appt.ID, &appt.CreatedAt, &appt.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrSlotUnavailable
			}
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query :=
		`SELECT a.id, a.time_slot_id, a.patient_id, s.dentist_id, a.status, a.notes, a.created_at, a.updated_at
		 FROM appointments a
		 JOIN time_slots s ON s.id = a.time_slot_id
		 WHERE a.id = $1`

	var (
		a      domain.Appointment
		status string
		notes  sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.TimeSlotID, &a.PatientID, &a.DentistID, &status, &notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	a.Status = domain.AppointmentStatus(status)
	a.Notes = notes.String
	return &a, nil
}

// Transition moves the appointment only if it is still in t.From, and frees
// the slot in the same transaction when asked to.
func (r *AppointmentRepository) Transition(ctx context.Context, t domain.Transition) error {
	return WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE appointments SET status = $1, updated_at = now()
			 WHERE id = $2 AND status = $3`,
			string(t.To), t.AppointmentID, string(t.From),
		)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: appointment %d is no longer %s", domain.ErrInvalidState, t.AppointmentID, t.From)
		}

		if !t.ReleaseSlot {
			return nil
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE time_slots SET is_available = true, updated_at = now() WHERE id = $1`,
			t.TimeSlotID,
		); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}

func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]domain.AppointmentDetail, error) {
	query := detailSelect + `
 WHERE a.patient_id = $1
 ORDER BY a.created_at DESC, a.id DESC`

	return r.listDetails(ctx, query, patientID)
}

func (r *AppointmentRepository) ListByDentist(ctx context.Context, f ports.DentistAppointmentsFilter) ([]domain.AppointmentDetail, error) {
	var (
		where strings.Builder
		args  = []any{f.DentistID}
	)
	where.WriteString(` WHERE s.dentist_id = $1`)

	if len(f.Statuses) > 0 {
		placeholders := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			args = append(args, string(s))
			placeholders = append(placeholders, "$"+strconv.Itoa(len(args)))
		}
		where.WriteString(` AND a.status IN (` + strings.Join(placeholders, ", ") + `)`)
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		where.WriteString(` AND s.start_time >= $` + strconv.Itoa(len(args)))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		where.WriteString(` AND s.start_time <= $` + strconv.Itoa(len(args)))
	}

	query := detailSelect + where.String() + `
 ORDER BY a.created_at ASC, a.id ASC`

	return r.listDetails(ctx, query, args...)
}

func (r *AppointmentRepository) listDetails(ctx context.Context, query string, args ...any) ([]domain.AppointmentDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]domain.AppointmentDetail, 0)
	for rows.Next() {
		var (
			d      domain.AppointmentDetail
			status string
			notes  sql.NullString
		)
		err := rows.Scan(
			&d.ID, &d.TimeSlotID, &d.PatientID, &status, &notes, &d.CreatedAt, &d.UpdatedAt,
			&d.TimeSlot.ID, &d.TimeSlot.DentistID, &d.TimeSlot.StartTime, &d.TimeSlot.EndTime,
			&d.TimeSlot.Duration, &d.TimeSlot.IsAvailable, &d.TimeSlot.CreatedAt, &d.TimeSlot.UpdatedAt,
			&d.Dentist.ID, &d.Dentist.Name, &d.Dentist.Email,
			&d.Patient.ID, &d.Patient.Name, &d.Patient.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		d.Status = domain.AppointmentStatus(status)
		d.Notes = notes.String
		d.DentistID = d.TimeSlot.DentistID
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
