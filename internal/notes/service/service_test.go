package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	notestore "conduct/internal/notes/store/note"
	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
)

// recordingNotifier captures fan-out triggers without delivering anything.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	subjects []string
	authors  []id.UserID
}

func (r *recordingNotifier) NotifyDetached(_ context.Context, author id.UserID, message, subjectRef string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authors = append(r.authors, author)
	r.messages = append(r.messages, message)
	r.subjects = append(r.subjects, subjectRef)
}

type NotesServiceSuite struct {
	suite.Suite
	store    *notestore.InMemory
	notifier *recordingNotifier
	service  *Service
	ctx      context.Context
	author   id.UserID
}

func (s *NotesServiceSuite) SetupTest() {
	s.store = notestore.NewInMemory()
	s.notifier = &recordingNotifier{}
	s.service = New(s.store, WithNotifier(s.notifier))
	s.ctx = context.Background()
	s.author = id.UserID(uuid.New())
}

func TestNotesServiceSuite(t *testing.T) {
	suite.Run(t, new(NotesServiceSuite))
}

func (s *NotesServiceSuite) TestCreateNote() {
	note, err := s.service.CreateNote(s.ctx, s.author, "Weekly cleaning rota", "Rooms 2xx rotate on Mondays.")
	s.Require().NoError(err)
	s.False(note.ID.IsNil())

	s.Run("triggers detached fan-out with the note as subject", func() {
		s.Require().Len(s.notifier.subjects, 1)
		s.Equal(note.ID.String(), s.notifier.subjects[0])
		s.Equal(s.author, s.notifier.authors[0])
		s.Contains(s.notifier.messages[0], "Weekly cleaning rota")
	})

	s.Run("rejects blank title", func() {
		_, err := s.service.CreateNote(s.ctx, s.author, "   ", "content")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *NotesServiceSuite) TestUpdateNote() {
	note, err := s.service.CreateNote(s.ctx, s.author, "Draft", "v1")
	s.Require().NoError(err)

	s.Run("author may edit", func() {
		updated, err := s.service.UpdateNote(s.ctx, note.ID, s.author, "Final", "v2")
		s.Require().NoError(err)
		s.Equal("Final", updated.Title)
		s.Equal(note.CreatedAt, updated.CreatedAt)
	})

	s.Run("others may not", func() {
		_, err := s.service.UpdateNote(s.ctx, note.ID, id.UserID(uuid.New()), "Hijack", "v3")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}

func (s *NotesServiceSuite) TestComments() {
	note, err := s.service.CreateNote(s.ctx, s.author, "Open question", "Thoughts?")
	s.Require().NoError(err)
	commenter := id.UserID(uuid.New())

	comment, err := s.service.AddComment(s.ctx, note.ID, commenter, "Sounds good")
	s.Require().NoError(err)

	s.Run("comment triggers fan-out against the note", func() {
		s.Require().Len(s.notifier.subjects, 2)
		s.Equal(note.ID.String(), s.notifier.subjects[1])
		s.Equal(commenter, s.notifier.authors[1])
	})

	s.Run("lists oldest first", func() {
		second, err := s.service.AddComment(s.ctx, note.ID, s.author, "Agreed")
		s.Require().NoError(err)

		comments, err := s.service.ListComments(s.ctx, note.ID)
		s.Require().NoError(err)
		s.Require().Len(comments, 2)
		s.Equal(comment.ID, comments[0].ID)
		s.Equal(second.ID, comments[1].ID)
	})

	s.Run("comment on missing note reports not found", func() {
		_, err := s.service.AddComment(s.ctx, id.NoteID(uuid.New()), commenter, "lost")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("only the comment author may delete it", func() {
		err := s.service.DeleteComment(s.ctx, note.ID, comment.ID, s.author)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

		s.Require().NoError(s.service.DeleteComment(s.ctx, note.ID, comment.ID, commenter))
	})
}

func (s *NotesServiceSuite) TestDeleteNote() {
	note, err := s.service.CreateNote(s.ctx, s.author, "Ephemeral", "gone soon")
	s.Require().NoError(err)
	_, err = s.service.AddComment(s.ctx, note.ID, s.author, "first")
	s.Require().NoError(err)

	s.Run("non-author is rejected", func() {
		err := s.service.DeleteNote(s.ctx, note.ID, id.UserID(uuid.New()))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("author delete removes the thread", func() {
		s.Require().NoError(s.service.DeleteNote(s.ctx, note.ID, s.author))

		_, err := s.service.GetNote(s.ctx, note.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

		_, err = s.service.ListComments(s.ctx, note.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *NotesServiceSuite) TestListNotes() {
	_, err := s.service.CreateNote(s.ctx, s.author, "First", "")
	s.Require().NoError(err)

	notes, err := s.service.ListNotes(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(notes, 1)
}

func (s *NotesServiceSuite) TestWithoutNotifier() {
	svc := New(s.store)
	_, err := svc.CreateNote(s.ctx, s.author, "Quiet note", "no fan-out wired")
	s.Require().NoError(err)
}
