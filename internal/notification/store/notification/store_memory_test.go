package notification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"conduct/internal/notification/models"
	id "conduct/pkg/domain"
	"conduct/pkg/platform/sentinel"
)

type NotificationStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *NotificationStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestNotificationStoreSuite(t *testing.T) {
	suite.Run(t, new(NotificationStoreSuite))
}

func (s *NotificationStoreSuite) newNotification(userID id.UserID, createdAt time.Time) *models.Notification {
	notif, err := models.NewNotification(
		id.NotificationID(uuid.New()), userID, id.UserID(uuid.New()), "a new note was shared", uuid.NewString(), createdAt)
	s.Require().NoError(err)
	return notif
}

func (s *NotificationStoreSuite) TestListForUser() {
	userID := id.UserID(uuid.New())
	otherID := id.UserID(uuid.New())
	base := time.Now()

	oldest := s.newNotification(userID, base.Add(-2*time.Hour))
	middle := s.newNotification(userID, base.Add(-time.Hour))
	newest := s.newNotification(userID, base)
	foreign := s.newNotification(otherID, base)
	for _, n := range []*models.Notification{oldest, middle, newest, foreign} {
		s.Require().NoError(s.store.Create(s.ctx, n))
	}

	s.Run("newest first, scoped to the recipient", func() {
		out, err := s.store.ListForUser(s.ctx, userID, 0)
		s.Require().NoError(err)
		s.Require().Len(out, 3)
		s.Equal(newest.ID, out[0].ID)
		s.Equal(oldest.ID, out[2].ID)
	})

	s.Run("limit caps the feed", func() {
		out, err := s.store.ListForUser(s.ctx, userID, 2)
		s.Require().NoError(err)
		s.Require().Len(out, 2)
		s.Equal(newest.ID, out[0].ID)
	})

	s.Run("unknown recipient gets an empty feed", func() {
		out, err := s.store.ListForUser(s.ctx, id.UserID(uuid.New()), 0)
		s.Require().NoError(err)
		s.Empty(out)
	})
}

func (s *NotificationStoreSuite) TestUnreadTracking() {
	userID := id.UserID(uuid.New())
	first := s.newNotification(userID, time.Now())
	second := s.newNotification(userID, time.Now())
	s.Require().NoError(s.store.Create(s.ctx, first))
	s.Require().NoError(s.store.Create(s.ctx, second))

	count, err := s.store.CountUnread(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(2, count)

	s.Require().NoError(s.store.MarkRead(s.ctx, userID, first.ID))

	count, err = s.store.CountUnread(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(1, count)

	unread, err := s.store.ListUnread(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(unread, 1)
	s.Equal(second.ID, unread[0].ID)
}

func (s *NotificationStoreSuite) TestMarkRead() {
	userID := id.UserID(uuid.New())
	notif := s.newNotification(userID, time.Now())
	s.Require().NoError(s.store.Create(s.ctx, notif))

	s.Run("is idempotent", func() {
		s.Require().NoError(s.store.MarkRead(s.ctx, userID, notif.ID))
		s.Require().NoError(s.store.MarkRead(s.ctx, userID, notif.ID))
	})

	s.Run("rejects records owned by another user", func() {
		err := s.store.MarkRead(s.ctx, id.UserID(uuid.New()), notif.ID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects unknown records", func() {
		err := s.store.MarkRead(s.ctx, userID, id.NotificationID(uuid.New()))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
