// Package service manages the shared notes feed and its comment threads.
// Writes to the feed trigger detached notification fan-out so the request
// returns as soon as the note or comment is stored.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"conduct/internal/notes/models"
	"conduct/internal/platform/metrics"
	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
	"conduct/pkg/platform/sentinel"
	"conduct/pkg/requestcontext"
)

// NoteStore is the persistence port for notes and comments.
type NoteStore interface {
	Insert(ctx context.Context, note *models.Note) error
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, noteID id.NoteID) error
	FindByID(ctx context.Context, noteID id.NoteID) (*models.Note, error)
	List(ctx context.Context) ([]*models.Note, error)
	InsertComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, commentID id.CommentID) error
	ListComments(ctx context.Context, noteID id.NoteID) ([]*models.Comment, error)
}

// Notifier is the detached fan-out port. The call must not block on delivery.
type Notifier interface {
	NotifyDetached(ctx context.Context, author id.UserID, message, subjectRef string)
}

// Service coordinates the notes feed.
type Service struct {
	notes    NoteStore
	notifier Notifier
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithNotifier attaches the fan-out port. Without one, feed writes simply
// skip notification.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// New constructs a Service.
func New(notes NoteStore, opts ...Option) *Service {
	s := &Service{notes: notes, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateNote stores a note and notifies every other user on a detached task.
func (s *Service) CreateNote(ctx context.Context, authorID id.UserID, title, content string) (*models.Note, error) {
	note, err := models.NewNote(id.NoteID(uuid.New()), authorID, title, content, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.notes.Insert(ctx, note); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create note")
	}
	if s.metrics != nil {
		s.metrics.NotesCreated.Inc()
	}
	s.notify(ctx, authorID, fmt.Sprintf("New note: %s", note.Title), note.ID.String())
	return note, nil
}

// UpdateNote replaces a note's title and content. Only the author may edit.
func (s *Service) UpdateNote(ctx context.Context, noteID id.NoteID, editorID id.UserID, title, content string) (*models.Note, error) {
	note, err := s.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.AuthorID != editorID {
		return nil, dErrors.New(dErrors.CodeForbidden, "only the author may edit a note")
	}

	updated, err := models.NewNote(noteID, note.AuthorID, title, content, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	updated.CreatedAt = note.CreatedAt

	if err := s.notes.Update(ctx, updated); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update note")
	}
	return updated, nil
}

// DeleteNote removes a note and its comments. Only the author may delete.
func (s *Service) DeleteNote(ctx context.Context, noteID id.NoteID, editorID id.UserID) error {
	note, err := s.GetNote(ctx, noteID)
	if err != nil {
		return err
	}
	if note.AuthorID != editorID {
		return dErrors.New(dErrors.CodeForbidden, "only the author may delete a note")
	}

	if err := s.notes.Delete(ctx, noteID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "note not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete note")
	}
	return nil
}

func (s *Service) GetNote(ctx context.Context, noteID id.NoteID) (*models.Note, error) {
	if noteID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "note id is required")
	}
	note, err := s.notes.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "note not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load note")
	}
	return note, nil
}

// ListNotes returns the feed, newest first.
func (s *Service) ListNotes(ctx context.Context) ([]*models.Note, error) {
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notes")
	}
	return notes, nil
}

// AddComment stores a comment under a note and notifies every other user on
// a detached task.
func (s *Service) AddComment(ctx context.Context, noteID id.NoteID, authorID id.UserID, content string) (*models.Comment, error) {
	comment, err := models.NewComment(id.CommentID(uuid.New()), noteID, authorID, content, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.notes.InsertComment(ctx, comment); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "note not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add comment")
	}
	s.notify(ctx, authorID, "New comment on a note", noteID.String())
	return comment, nil
}

// DeleteComment removes a comment. Only its author may delete it.
func (s *Service) DeleteComment(ctx context.Context, noteID id.NoteID, commentID id.CommentID, editorID id.UserID) error {
	comments, err := s.ListComments(ctx, noteID)
	if err != nil {
		return err
	}
	for _, comment := range comments {
		if comment.ID != commentID {
			continue
		}
		if comment.AuthorID != editorID {
			return dErrors.New(dErrors.CodeForbidden, "only the author may delete a comment")
		}
		if err := s.notes.DeleteComment(ctx, commentID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "comment not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete comment")
		}
		return nil
	}
	return dErrors.New(dErrors.CodeNotFound, "comment not found")
}

// ListComments returns a note's thread, oldest first.
func (s *Service) ListComments(ctx context.Context, noteID id.NoteID) ([]*models.Comment, error) {
	if _, err := s.GetNote(ctx, noteID); err != nil {
		return nil, err
	}
	comments, err := s.notes.ListComments(ctx, noteID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list comments")
	}
	return comments, nil
}

func (s *Service) notify(ctx context.Context, author id.UserID, message, subjectRef string) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyDetached(ctx, author, message, subjectRef)
}
