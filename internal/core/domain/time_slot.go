package domain

import (
	"fmt"
	"time"
)

const (
	MinSlotDuration = 5
	MaxSlotDuration = 120
)

// TimeSlot is a bookable interval owned by one dentist.
// End is always Start plus Duration minutes.
type TimeSlot struct {
	ID          int64     `json:"id"`
	DentistID   int64     `json:"dentist_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Duration    int       `json:"duration"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TimeSlotWithDentist is a slot joined with its owner, as shown to patients.
type TimeSlotWithDentist struct {
	TimeSlot
	Dentist UserRef `json:"dentist"`
}

// NewTimeSlot builds an available slot for dentistID. Duration is in minutes.
func NewTimeSlot(dentistID int64, start time.Time, duration int) (*TimeSlot, error) {
	if duration < MinSlotDuration || duration > MaxSlotDuration {
		return nil, fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, MinSlotDuration, MaxSlotDuration)
	}
	if start.IsZero() {
		return nil, fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}
	start = start.UTC()
	return &TimeSlot{
		DentistID:   dentistID,
		StartTime:   start,
		EndTime:     start.Add(time.Duration(duration) * time.Minute),
		Duration:    duration,
		IsAvailable: true,
	}, nil
}

// Overlaps is the one overlap rule for slots of the same dentist.
// Intervals are half-open, so a slot ending at 10:30 does not collide with
// one starting at 10:30.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// OverlapsWith reports whether s and other collide under Overlaps.
func (s TimeSlot) OverlapsWith(other TimeSlot) bool {
	return Overlaps(s.StartTime, s.EndTime, other.StartTime, other.EndTime)
}

// DayBounds returns the first and last millisecond of day's calendar date in loc.
func DayBounds(day time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	d := day.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}
