// Package domain holds typed identifiers and value types shared across
// bounded contexts. Typed IDs prevent cross-entity assignment at compile
// time; parsing enforces the invariant that IDs are valid, non-nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "conduct/pkg/domain-errors"
)

type (
	// UserID identifies a staff user (evaluator, note author, recipient).
	UserID uuid.UUID
	// ResidentID identifies a resident on the roster.
	ResidentID uuid.UUID
	// EvaluationID identifies a daily conduct evaluation record.
	EvaluationID uuid.UUID
	// NotificationID identifies a delivered notification record.
	NotificationID uuid.UUID
	// NoteID identifies a note on the shared feed.
	NoteID uuid.UUID
	// CommentID identifies a comment under a note.
	CommentID uuid.UUID
)

func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s id is required", kind)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid %s id", kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s id must not be nil", kind)
	}
	return u, nil
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user")
	return UserID(u), err
}

func ParseResidentID(s string) (ResidentID, error) {
	u, err := parseUUID(s, "resident")
	return ResidentID(u), err
}

func ParseEvaluationID(s string) (EvaluationID, error) {
	u, err := parseUUID(s, "evaluation")
	return EvaluationID(u), err
}

func ParseNotificationID(s string) (NotificationID, error) {
	u, err := parseUUID(s, "notification")
	return NotificationID(u), err
}

func ParseNoteID(s string) (NoteID, error) {
	u, err := parseUUID(s, "note")
	return NoteID(u), err
}

func ParseCommentID(s string) (CommentID, error) {
	u, err := parseUUID(s, "comment")
	return CommentID(u), err
}

func (i UserID) String() string         { return uuid.UUID(i).String() }
func (i ResidentID) String() string     { return uuid.UUID(i).String() }
func (i EvaluationID) String() string   { return uuid.UUID(i).String() }
func (i NotificationID) String() string { return uuid.UUID(i).String() }
func (i NoteID) String() string         { return uuid.UUID(i).String() }
func (i CommentID) String() string      { return uuid.UUID(i).String() }

func (i UserID) IsNil() bool         { return uuid.UUID(i) == uuid.Nil }
func (i ResidentID) IsNil() bool     { return uuid.UUID(i) == uuid.Nil }
func (i EvaluationID) IsNil() bool   { return uuid.UUID(i) == uuid.Nil }
func (i NotificationID) IsNil() bool { return uuid.UUID(i) == uuid.Nil }
func (i NoteID) IsNil() bool         { return uuid.UUID(i) == uuid.Nil }
func (i CommentID) IsNil() bool      { return uuid.UUID(i) == uuid.Nil }
