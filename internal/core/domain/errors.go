package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConflict        = errors.New("time slot overlaps an existing slot")
	ErrSlotUnavailable = errors.New("time slot not available")
	ErrForbidden       = errors.New("access forbidden")
	ErrInvalidState    = errors.New("invalid appointment state")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternal        = errors.New("internal error")
)

var (
	ErrTimeSlotNotFound    = fmt.Errorf("time slot %w", ErrNotFound)
	ErrAppointmentNotFound = fmt.Errorf("appointment %w", ErrNotFound)
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

var known = []error{
	ErrConflict,
	ErrSlotUnavailable,
	ErrForbidden,
	ErrInvalidState,
	ErrNotFound,
	ErrInvalidInput,
	ErrInternal,
	ErrInvalidCredentials,
	ErrUserNotFound,
	ErrUserExists,
}

// IsKnown reports whether err wraps one of the package sentinels.
func IsKnown(err error) bool {
	for _, k := range known {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

// Internal tags err as ErrInternal unless it already carries a known sentinel.
func Internal(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsKnown(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}
