// Package evaluation provides the evaluation record stores.
package evaluation

import (
	"context"
	"sort"
	"sync"

	"conduct/internal/evaluation/models"
	id "conduct/pkg/domain"
	"conduct/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded map store for tests and single-node dev runs.
type InMemory struct {
	mu    sync.RWMutex
	items map[id.EvaluationID]*models.Evaluation
}

func NewInMemory() *InMemory {
	return &InMemory{items: make(map[id.EvaluationID]*models.Evaluation)}
}

// Insert stores a new evaluation. Returns sentinel.ErrConflict when an
// evaluation already exists for the same (resident, day).
func (s *InMemory) Insert(_ context.Context, eval *models.Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[eval.ID]; ok {
		return sentinel.ErrConflict
	}
	for _, existing := range s.items {
		if existing.ResidentID == eval.ResidentID && existing.Day == eval.Day {
			return sentinel.ErrConflict
		}
	}
	s.items[eval.ID] = eval.Clone()
	return nil
}

// Update replaces an existing evaluation by ID.
func (s *InMemory) Update(_ context.Context, eval *models.Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[eval.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.items[eval.ID] = eval.Clone()
	return nil
}

func (s *InMemory) Delete(_ context.Context, evalID id.EvaluationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[evalID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.items, evalID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, evalID id.EvaluationID) (*models.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	eval, ok := s.items[evalID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return eval.Clone(), nil
}

// FindByResidentAndDay scans for the resident's record on the given day.
// Day equality is plain string equality on the canonical YYYY-MM-DD form.
func (s *InMemory) FindByResidentAndDay(_ context.Context, residentID id.ResidentID, day id.Day) (*models.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, eval := range s.items {
		if eval.ResidentID == residentID && eval.Day == day {
			return eval.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// FindByDayRange returns evaluations with start <= day <= end, newest day
// first, resident order stable within a day.
func (s *InMemory) FindByDayRange(_ context.Context, start, end id.Day) ([]*models.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Evaluation
	for _, eval := range s.items {
		if !eval.Day.Before(start) && !eval.Day.After(end) {
			out = append(out, eval.Clone())
		}
	}
	sortEvaluations(out)
	return out, nil
}

// ListRecent returns up to limit evaluations, newest day first.
func (s *InMemory) ListRecent(_ context.Context, limit int) ([]*models.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Evaluation, 0, len(s.items))
	for _, eval := range s.items {
		out = append(out, eval.Clone())
	}
	sortEvaluations(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortEvaluations(evals []*models.Evaluation) {
	sort.Slice(evals, func(i, j int) bool {
		if evals[i].Day != evals[j].Day {
			return evals[i].Day.After(evals[j].Day)
		}
		return evals[i].ResidentID.String() < evals[j].ResidentID.String()
	})
}
