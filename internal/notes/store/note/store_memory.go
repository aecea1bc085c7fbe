// Package note provides the notes feed stores.
package note

import (
	"context"
	"sort"
	"sync"

	"conduct/internal/notes/models"
	id "conduct/pkg/domain"
	"conduct/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded map store for tests and single-node dev runs.
// Comments live alongside notes; deleting a note drops its comments.
type InMemory struct {
	mu       sync.RWMutex
	notes    map[id.NoteID]*models.Note
	comments map[id.CommentID]*models.Comment
}

func NewInMemory() *InMemory {
	return &InMemory{
		notes:    make(map[id.NoteID]*models.Note),
		comments: make(map[id.CommentID]*models.Comment),
	}
}

func (s *InMemory) Insert(_ context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[note.ID]; ok {
		return sentinel.ErrConflict
	}
	s.notes[note.ID] = note.Clone()
	return nil
}

func (s *InMemory) Update(_ context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[note.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.notes[note.ID] = note.Clone()
	return nil
}

func (s *InMemory) Delete(_ context.Context, noteID id.NoteID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[noteID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.notes, noteID)
	for commentID, comment := range s.comments {
		if comment.NoteID == noteID {
			delete(s.comments, commentID)
		}
	}
	return nil
}

func (s *InMemory) FindByID(_ context.Context, noteID id.NoteID) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[noteID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return note.Clone(), nil
}

// List returns notes newest first.
func (s *InMemory) List(_ context.Context) ([]*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Note, 0, len(s.notes))
	for _, note := range s.notes {
		out = append(out, note.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// InsertComment adds a comment under an existing note.
func (s *InMemory) InsertComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[comment.NoteID]; !ok {
		return sentinel.ErrNotFound
	}
	if _, ok := s.comments[comment.ID]; ok {
		return sentinel.ErrConflict
	}
	s.comments[comment.ID] = comment.Clone()
	return nil
}

func (s *InMemory) DeleteComment(_ context.Context, commentID id.CommentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[commentID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.comments, commentID)
	return nil
}

// ListComments returns a note's comments oldest first.
func (s *InMemory) ListComments(_ context.Context, noteID id.NoteID) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Comment
	for _, comment := range s.comments {
		if comment.NoteID == noteID {
			out = append(out, comment.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
