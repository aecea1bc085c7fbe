// Package models holds the registry entities: staff users and residents.
package models

import (
	"strings"
	"time"

	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
)

// User is a staff member: evaluator, note author, notification recipient.
type User struct {
	ID          id.UserID
	DisplayName string
	Email       string
	CreatedAt   time.Time
}

// NewUser constructs a user.
//
// Invariants:
//   - email is present and contains a local part and a domain
//   - display name is present
func NewUser(userID id.UserID, displayName, email string, now time.Time) (*User, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "user id is required")
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "display name is required")
	}
	email = strings.TrimSpace(strings.ToLower(email))
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "a valid email is required")
	}
	return &User{ID: userID, DisplayName: displayName, Email: email, CreatedAt: now}, nil
}

// Resident is a person on the dormitory roster being evaluated daily.
type Resident struct {
	ID        id.ResidentID
	Name      string
	Room      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewResident constructs a resident.
func NewResident(residentID id.ResidentID, name, room string, now time.Time) (*Resident, error) {
	if residentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "resident id is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "resident name is required")
	}
	return &Resident{
		ID:        residentID,
		Name:      name,
		Room:      strings.TrimSpace(room),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

func (r *Resident) Clone() *Resident {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}
