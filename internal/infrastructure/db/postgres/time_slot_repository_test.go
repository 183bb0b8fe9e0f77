package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/brightsmile/booking-api/internal/core/domain"
)

const (
	lockQuery     = `SELECT\s+pg_advisory_xact_lock\(\$1\)`
	overlapQuery  = `SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+time_slots\s+WHERE\s+dentist_id\s*=\s*\$1\s+AND\s+start_time\s*<\s*\$3\s+AND\s+end_time\s*>\s*\$2\)`
	insertSlotSQL = `INSERT\s+INTO\s+time_slots\s*\(dentist_id,\s*start_time,\s*end_time,\s*duration,\s*is_available\)`
)

func newSlot(t *testing.T) *domain.TimeSlot {
	t.Helper()
	slot, err := domain.NewTimeSlot(5, time.Date(2023, 6, 20, 10, 0, 0, 0, time.UTC), 30)
	if err != nil {
		t.Fatalf("NewTimeSlot error: %v", err)
	}
	return slot
}

func TestTimeSlotRepository_Create_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTimeSlotRepository(db)
	slot := newSlot(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(lockQuery).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(overlapQuery).
		WithArgs(int64(5), slot.StartTime, slot.EndTime).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(insertSlotSQL).
		WithArgs(int64(5), slot.StartTime, slot.EndTime, 30, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))
	mock.ExpectCommit()

	if err := repo.Create(context.Background(), slot); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if slot.ID != 11 {
		t.Fatalf("expected id 11, got %d", slot.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTimeSlotRepository_Create_Overlap(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTimeSlotRepository(db)
	slot := newSlot(t)

	mock.ExpectBegin()
	mock.ExpectExec(lockQuery).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(overlapQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	if err := repo.Create(context.Background(), slot); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if slot.ID != 0 {
		t.Fatalf("slot must not get an id, got %d", slot.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTimeSlotRepository_Create_LockError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTimeSlotRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(lockQuery).WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), newSlot(t))
	if err == nil || domain.IsKnown(err) {
		t.Fatalf("expected raw db error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTimeSlotRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTimeSlotRepository(db)

	mock.ExpectQuery(`FROM\s+time_slots\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.FindByID(context.Background(), 4); !errors.Is(err, domain.ErrTimeSlotNotFound) {
		t.Fatalf("expected ErrTimeSlotNotFound, got %v", err)
	}
}

func TestTimeSlotRepository_ListAvailableBetween(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTimeSlotRepository(db)
	from := time.Date(2023, 6, 20, 0, 0, 0, 0, time.UTC)
	to := from.Add(24*time.Hour - time.Millisecond)
	start := from.Add(9 * time.Hour)

	rows := sqlmock.NewRows([]string{
		"id", "dentist_id", "start_time", "end_time", "duration", "is_available", "created_at", "updated_at", "u.id", "name",
	}).
		AddRow(int64(1), int64(5), start, start.Add(30*time.Minute), 30, true, from, from, int64(5), "Dr. Ana").
		AddRow(int64(2), int64(6), start.Add(time.Hour), start.Add(90*time.Minute), 30, true, from, from, int64(6), "Dr. Leo")

	mock.ExpectQuery(`(?s)WHERE\s+s\.is_available\s*=\s*true.*ORDER\s+BY\s+s\.start_time\s+ASC`).
		WithArgs(from, to).
		WillReturnRows(rows)

	got, err := repo.ListAvailableBetween(context.Background(), from, to)
	if err != nil {
		t.Fatalf("ListAvailableBetween error: %v", err)
	}
	if len(got) != 2 || got[0].Dentist.Name != "Dr. Ana" || got[1].ID != 2 {
		t.Fatalf("unexpected slots: %+v", got)
	}
}

func TestTimeSlotRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTimeSlotRepository(db)

	mock.ExpectExec(`DELETE\s+FROM\s+time_slots\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+time_slots`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 3); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := repo.Delete(context.Background(), 3); !errors.Is(err, domain.ErrTimeSlotNotFound) {
		t.Fatalf("expected ErrTimeSlotNotFound on second delete, got %v", err)
	}
}
