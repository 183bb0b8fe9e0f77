package domain

import "time"

// Role is the fixed role a user registers with. It never changes afterwards.
type Role string

const (
	// RoleDentist is stored as "admin" to stay compatible with existing accounts.
	RoleDentist Role = "admin"
	RolePatient Role = "patient"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleDentist || r == RolePatient
}

// User models an authenticated actor in the system.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the caller of a request. Handlers build it from the verified
// token and pass it into every service call.
type Identity struct {
	UserID int64
	Role   Role
	Name   string
	Email  string
}

// UserRef is the compact user view embedded in slot and appointment listings.
type UserRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
