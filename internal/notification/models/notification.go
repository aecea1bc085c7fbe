// Package models holds the notification domain entities.
package models

import (
	"strings"
	"time"

	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
)

// Notification is one delivered message for one recipient. Fan-out writes an
// independent record per recipient, so read state is tracked per user.
type Notification struct {
	ID         id.NotificationID
	UserID     id.UserID
	AuthorID   id.UserID
	Message    string
	SubjectRef string
	Read       bool
	CreatedAt  time.Time
}

// NewNotification constructs an unread notification for a recipient. AuthorID
// identifies the user whose action triggered the fan-out.
func NewNotification(notifID id.NotificationID, userID, authorID id.UserID, message, subjectRef string, now time.Time) (*Notification, error) {
	if notifID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "notification id is required")
	}
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "recipient user id is required")
	}
	if authorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "author user id is required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "message is required")
	}
	return &Notification{
		ID:         notifID,
		UserID:     userID,
		AuthorID:   authorID,
		Message:    message,
		SubjectRef: subjectRef,
		Read:       false,
		CreatedAt:  now,
	}, nil
}

// Clone returns a copy so in-memory stores never share records with callers.
func (n *Notification) Clone() *Notification {
	if n == nil {
		return nil
	}
	cp := *n
	return &cp
}
