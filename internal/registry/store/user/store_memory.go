// Package user provides the staff user stores.
package user

import (
	"context"
	"sort"
	"strings"
	"sync"

	"conduct/internal/registry/models"
	id "conduct/pkg/domain"
	"conduct/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded map store for tests and single-node dev runs.
type InMemory struct {
	mu    sync.RWMutex
	items map[id.UserID]*models.User
}

func NewInMemory() *InMemory {
	return &InMemory{items: make(map[id.UserID]*models.User)}
}

// Create stores a new user. Email uniqueness is case-insensitive; a duplicate
// returns sentinel.ErrConflict.
func (s *InMemory) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[user.ID]; ok {
		return sentinel.ErrConflict
	}
	for _, existing := range s.items {
		if strings.EqualFold(existing.Email, user.Email) {
			return sentinel.ErrConflict
		}
	}
	s.items[user.ID] = user.Clone()
	return nil
}

func (s *InMemory) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[user.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.items[user.ID] = user.Clone()
	return nil
}

func (s *InMemory) Delete(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[userID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.items, userID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.items[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return user.Clone(), nil
}

// List returns every user ordered by display name.
func (s *InMemory) List(_ context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.User, 0, len(s.items))
	for _, user := range s.items {
		out = append(out, user.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayName != out[j].DisplayName {
			return out[i].DisplayName < out[j].DisplayName
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// ListIDs returns every user ID. Fan-out uses this as the recipient universe.
func (s *InMemory) ListIDs(_ context.Context) ([]id.UserID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]id.UserID, 0, len(s.items))
	for userID := range s.items {
		out = append(out, userID)
	}
	return out, nil
}
