//go:build integration

package evaluation_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"conduct/internal/checklist"
	"conduct/internal/evaluation/models"
	"conduct/internal/evaluation/store/evaluation"
	id "conduct/pkg/domain"
	"conduct/pkg/platform/sentinel"
	"conduct/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *evaluation.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = evaluation.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "evaluations"))
}

func newTestEvaluation(s *PostgresStoreSuite, residentID id.ResidentID, day id.Day, answers map[string]bool) *models.Evaluation {
	eval, err := models.NewEvaluation(
		id.EvaluationID(uuid.New()),
		residentID,
		day,
		checklist.Normalize(answers),
		"",
		id.UserID(uuid.New()),
		time.Now().UTC().Truncate(time.Microsecond),
	)
	s.Require().NoError(err)
	return eval
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	residentID := id.ResidentID(uuid.New())
	day := id.Day("2026-04-02")

	eval := newTestEvaluation(s, residentID, day, map[string]bool{"bed": false, "phoneCaught": true})
	eval.Notes = "phone confiscated at lights out"
	s.Require().NoError(s.store.Insert(ctx, eval))

	found, err := s.store.FindByResidentAndDay(ctx, residentID, day)
	s.Require().NoError(err)
	s.Equal(eval.ID, found.ID)
	s.Equal(day, found.Day)
	s.Equal(2, found.Score)
	s.False(found.Answers["bed"])
	s.True(found.Answers["phoneCaught"])
	s.Equal("phone confiscated at lights out", found.Notes)

	s.Require().NoError(found.ApplyAnswers(checklist.DefaultAnswers(), "", found.RecordedBy, time.Now()))
	s.Require().NoError(s.store.Update(ctx, found))

	updated, err := s.store.FindByID(ctx, eval.ID)
	s.Require().NoError(err)
	s.Equal(0, updated.Score)
	s.Empty(updated.Notes)
}

func (s *PostgresStoreSuite) TestFindMissing() {
	_, err := s.store.FindByResidentAndDay(context.Background(), id.ResidentID(uuid.New()), id.Day("2026-04-02"))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentDuplicateDay verifies that concurrent inserts for the same
// resident and day result in exactly one winner; the unique constraint turns
// the rest into conflicts.
func (s *PostgresStoreSuite) TestConcurrentDuplicateDay() {
	ctx := context.Background()
	residentID := id.ResidentID(uuid.New())
	day := id.Day("2026-04-03")
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			eval := newTestEvaluation(s, residentID, day, nil)
			err := s.store.Insert(ctx, eval)
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrConflict) {
				conflictCount.Add(1)
			}
		}()
	}

	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one insert should win")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should conflict")

	found, err := s.store.FindByResidentAndDay(ctx, residentID, day)
	s.Require().NoError(err)
	s.Equal(day, found.Day)
}

func (s *PostgresStoreSuite) TestDayRangeOrdering() {
	ctx := context.Background()
	residentID := id.ResidentID(uuid.New())

	for _, day := range []id.Day{"2026-04-01", "2026-04-03", "2026-04-05"} {
		s.Require().NoError(s.store.Insert(ctx, newTestEvaluation(s, residentID, day, nil)))
	}

	evals, err := s.store.FindByDayRange(ctx, "2026-04-01", "2026-04-03")
	s.Require().NoError(err)
	s.Require().Len(evals, 2)
	s.Equal(id.Day("2026-04-03"), evals[0].Day)
	s.Equal(id.Day("2026-04-01"), evals[1].Day)

	recent, err := s.store.ListRecent(ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(recent, 2)
	s.Equal(id.Day("2026-04-05"), recent[0].Day)
}
