// Package models holds the shared notes feed entities.
package models

import (
	"strings"
	"time"

	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
)

// Note is a staff-authored entry on the shared feed.
type Note struct {
	ID        id.NoteID
	AuthorID  id.UserID
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewNote constructs a note.
func NewNote(noteID id.NoteID, authorID id.UserID, title, content string, now time.Time) (*Note, error) {
	if noteID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "note id is required")
	}
	if authorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "author is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "title is required")
	}
	return &Note{
		ID:        noteID,
		AuthorID:  authorID,
		Title:     title,
		Content:   strings.TrimSpace(content),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Comment is a reply under a note.
type Comment struct {
	ID        id.CommentID
	NoteID    id.NoteID
	AuthorID  id.UserID
	Content   string
	CreatedAt time.Time
}

// NewComment constructs a comment.
func NewComment(commentID id.CommentID, noteID id.NoteID, authorID id.UserID, content string, now time.Time) (*Comment, error) {
	if commentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "comment id is required")
	}
	if noteID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "note id is required")
	}
	if authorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "author is required")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "content is required")
	}
	return &Comment{
		ID:        commentID,
		NoteID:    noteID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
	}, nil
}

func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	cp := *n
	return &cp
}

func (c *Comment) Clone() *Comment {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
