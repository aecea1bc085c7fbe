package evaluation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"conduct/internal/checklist"
	"conduct/internal/evaluation/models"
	id "conduct/pkg/domain"
	"conduct/pkg/platform/sentinel"
)

type EvaluationStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *EvaluationStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestEvaluationStoreSuite(t *testing.T) {
	suite.Run(t, new(EvaluationStoreSuite))
}

func (s *EvaluationStoreSuite) newEvaluation(residentID id.ResidentID, day id.Day) *models.Evaluation {
	eval, err := models.NewEvaluation(
		id.EvaluationID(uuid.New()),
		residentID,
		day,
		checklist.DefaultAnswers(),
		"",
		id.UserID(uuid.New()),
		time.Now(),
	)
	s.Require().NoError(err)
	return eval
}

// TestInsertAndLookups verifies the store creates and retrieves evaluations.
func (s *EvaluationStoreSuite) TestInsertAndLookups() {
	s.Run("inserts and finds by resident and day", func() {
		residentID := id.ResidentID(uuid.New())
		eval := s.newEvaluation(residentID, "2026-03-01")
		s.Require().NoError(s.store.Insert(s.ctx, eval))

		found, err := s.store.FindByResidentAndDay(s.ctx, residentID, "2026-03-01")
		s.Require().NoError(err)
		s.Equal(eval.ID, found.ID)
		s.Equal(eval.Answers, found.Answers)
	})

	s.Run("returns ErrNotFound for another day", func() {
		residentID := id.ResidentID(uuid.New())
		eval := s.newEvaluation(residentID, "2026-03-01")
		s.Require().NoError(s.store.Insert(s.ctx, eval))

		_, err := s.store.FindByResidentAndDay(s.ctx, residentID, "2026-03-02")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.FindByID(s.ctx, id.EvaluationID(uuid.New()))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestDayUniqueness verifies one evaluation per (resident, day).
func (s *EvaluationStoreSuite) TestDayUniqueness() {
	s.Run("rejects second record for same resident and day", func() {
		residentID := id.ResidentID(uuid.New())
		s.Require().NoError(s.store.Insert(s.ctx, s.newEvaluation(residentID, "2026-03-01")))

		err := s.store.Insert(s.ctx, s.newEvaluation(residentID, "2026-03-01"))
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("allows same day for different residents", func() {
		s.Require().NoError(s.store.Insert(s.ctx, s.newEvaluation(id.ResidentID(uuid.New()), "2026-03-01")))
		s.Require().NoError(s.store.Insert(s.ctx, s.newEvaluation(id.ResidentID(uuid.New()), "2026-03-01")))
	})

	s.Run("allows different days for same resident", func() {
		residentID := id.ResidentID(uuid.New())
		s.Require().NoError(s.store.Insert(s.ctx, s.newEvaluation(residentID, "2026-03-01")))
		s.Require().NoError(s.store.Insert(s.ctx, s.newEvaluation(residentID, "2026-03-02")))
	})
}

// TestUpdates verifies updates persist and missing records error.
func (s *EvaluationStoreSuite) TestUpdates() {
	s.Run("persists answer changes", func() {
		eval := s.newEvaluation(id.ResidentID(uuid.New()), "2026-03-01")
		s.Require().NoError(s.store.Insert(s.ctx, eval))

		answers := checklist.DefaultAnswers()
		answers["bed"] = false
		answers["phoneCaught"] = true
		s.Require().NoError(eval.ApplyAnswers(answers, "late lights out", eval.RecordedBy, time.Now()))
		s.Require().NoError(s.store.Update(s.ctx, eval))

		found, err := s.store.FindByID(s.ctx, eval.ID)
		s.Require().NoError(err)
		s.Equal(2, found.Score)
		s.False(found.Answers["bed"])
		s.Equal("late lights out", found.Notes)
	})

	s.Run("returns ErrNotFound for missing record", func() {
		eval := s.newEvaluation(id.ResidentID(uuid.New()), "2026-03-01")
		s.Require().ErrorIs(s.store.Update(s.ctx, eval), sentinel.ErrNotFound)
	})

	s.Run("reads are isolated from caller mutation", func() {
		eval := s.newEvaluation(id.ResidentID(uuid.New()), "2026-03-01")
		s.Require().NoError(s.store.Insert(s.ctx, eval))

		found, err := s.store.FindByID(s.ctx, eval.ID)
		s.Require().NoError(err)
		found.Answers["bed"] = false

		again, err := s.store.FindByID(s.ctx, eval.ID)
		s.Require().NoError(err)
		s.True(again.Answers["bed"])
	})
}

// TestDelete verifies removal semantics.
func (s *EvaluationStoreSuite) TestDelete() {
	eval := s.newEvaluation(id.ResidentID(uuid.New()), "2026-03-01")
	s.Require().NoError(s.store.Insert(s.ctx, eval))

	s.Require().NoError(s.store.Delete(s.ctx, eval.ID))
	_, err := s.store.FindByID(s.ctx, eval.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().ErrorIs(s.store.Delete(s.ctx, eval.ID), sentinel.ErrNotFound)
}

// TestRangeQueries verifies inclusive bounds and ordering.
func (s *EvaluationStoreSuite) TestRangeQueries() {
	days := []id.Day{"2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"}
	for _, day := range days {
		s.Require().NoError(s.store.Insert(s.ctx, s.newEvaluation(id.ResidentID(uuid.New()), day)))
	}

	s.Run("bounds are inclusive", func() {
		out, err := s.store.FindByDayRange(s.ctx, "2026-02-28", "2026-03-01")
		s.Require().NoError(err)
		s.Require().Len(out, 2)
		s.Equal(id.Day("2026-03-01"), out[0].Day)
		s.Equal(id.Day("2026-02-28"), out[1].Day)
	})

	s.Run("empty range yields no rows", func() {
		out, err := s.store.FindByDayRange(s.ctx, "2025-01-01", "2025-01-31")
		s.Require().NoError(err)
		s.Empty(out)
	})

	s.Run("list recent honors limit and order", func() {
		out, err := s.store.ListRecent(s.ctx, 3)
		s.Require().NoError(err)
		s.Require().Len(out, 3)
		s.Equal(id.Day("2026-03-02"), out[0].Day)
		s.Equal(id.Day("2026-03-01"), out[1].Day)
		s.Equal(id.Day("2026-02-28"), out[2].Day)
	})
}
