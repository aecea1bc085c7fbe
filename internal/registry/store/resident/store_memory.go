// Package resident provides the resident roster stores.
package resident

import (
	"context"
	"sort"
	"sync"

	"conduct/internal/registry/models"
	id "conduct/pkg/domain"
	"conduct/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded map store for tests and single-node dev runs.
type InMemory struct {
	mu    sync.RWMutex
	items map[id.ResidentID]*models.Resident
}

func NewInMemory() *InMemory {
	return &InMemory{items: make(map[id.ResidentID]*models.Resident)}
}

func (s *InMemory) Create(_ context.Context, resident *models.Resident) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[resident.ID]; ok {
		return sentinel.ErrConflict
	}
	s.items[resident.ID] = resident.Clone()
	return nil
}

func (s *InMemory) Update(_ context.Context, resident *models.Resident) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[resident.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.items[resident.ID] = resident.Clone()
	return nil
}

func (s *InMemory) Delete(_ context.Context, residentID id.ResidentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[residentID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.items, residentID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, residentID id.ResidentID) (*models.Resident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resident, ok := s.items[residentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return resident.Clone(), nil
}

// List returns the roster ordered by room, then name.
func (s *InMemory) List(_ context.Context) ([]*models.Resident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Resident, 0, len(s.items))
	for _, resident := range s.items {
		out = append(out, resident.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Room != out[j].Room {
			return out[i].Room < out[j].Room
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
