// Package notification provides the notification record stores.
package notification

import (
	"context"
	"sort"
	"sync"

	"conduct/internal/notification/models"
	id "conduct/pkg/domain"
	"conduct/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded map store for tests and single-node dev runs.
type InMemory struct {
	mu    sync.RWMutex
	items map[id.NotificationID]*models.Notification
}

func NewInMemory() *InMemory {
	return &InMemory{items: make(map[id.NotificationID]*models.Notification)}
}

func (s *InMemory) Create(_ context.Context, notif *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[notif.ID]; ok {
		return sentinel.ErrConflict
	}
	s.items[notif.ID] = notif.Clone()
	return nil
}

// ListForUser returns the recipient's notifications, newest first, capped at
// limit when limit > 0.
func (s *InMemory) ListForUser(_ context.Context, userID id.UserID, limit int) ([]*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.collect(userID, false)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListUnread returns every unread notification for the recipient, newest first.
func (s *InMemory) ListUnread(_ context.Context, userID id.UserID) ([]*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(userID, true), nil
}

func (s *InMemory) CountUnread(_ context.Context, userID id.UserID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, notif := range s.items {
		if notif.UserID == userID && !notif.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead flags a recipient's notification as read. Marking an already-read
// record is a no-op, not an error. A record owned by another user is reported
// as not found.
func (s *InMemory) MarkRead(_ context.Context, userID id.UserID, notifID id.NotificationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notif, ok := s.items[notifID]
	if !ok || notif.UserID != userID {
		return sentinel.ErrNotFound
	}
	notif.Read = true
	return nil
}

func (s *InMemory) collect(userID id.UserID, unreadOnly bool) []*models.Notification {
	var out []*models.Notification
	for _, notif := range s.items {
		if notif.UserID != userID {
			continue
		}
		if unreadOnly && notif.Read {
			continue
		}
		out = append(out, notif.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
