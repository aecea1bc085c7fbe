package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"conduct/internal/checklist"
	"conduct/internal/evaluation/models"
	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
	"conduct/pkg/platform/sentinel"
	"conduct/pkg/requestcontext"
)

// UpsertSingle writes the resident's evaluation for the given day, updating
// the existing record if one exists. Raw answers are normalized to the full
// checklist before scoring; notes is the evaluator's free text and replaces
// the stored notes on update. A concurrent insert of the same (resident, day)
// loses at the store's unique constraint and is converged into an update, so
// the operation never produces a duplicate day.
func (s *Service) UpsertSingle(ctx context.Context, residentID id.ResidentID, day id.Day, answers map[string]bool, notes string, recordedBy id.UserID) (*models.UpsertResult, error) {
	ctx, span := s.tracer.Start(ctx, "evaluation.UpsertSingle")
	defer span.End()
	span.SetAttributes(
		attribute.String("resident_id", residentID.String()),
		attribute.String("day", day.String()),
	)

	if err := validateWrite(residentID, day, recordedBy); err != nil {
		return nil, err
	}

	normalized := checklist.Normalize(answers)
	now := requestcontext.Now(ctx)

	existing, err := s.evaluations.FindByResidentAndDay(ctx, residentID, day)
	switch {
	case err == nil:
		if err := existing.ApplyAnswers(normalized, notes, recordedBy, now); err != nil {
			return nil, err
		}
		if err := s.evaluations.Update(ctx, existing); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update evaluation")
		}
		s.incrementUpsert("updated")
		return &models.UpsertResult{ID: existing.ID, WasUpdate: true}, nil

	case errors.Is(err, sentinel.ErrNotFound):
		return s.insertConverging(ctx, residentID, day, normalized, notes, recordedBy)

	default:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load evaluation")
	}
}

// insertConverging inserts a fresh record. Losing the duplicate-day race
// surfaces as sentinel.ErrConflict, in which case the winner's record is
// loaded and updated instead.
func (s *Service) insertConverging(ctx context.Context, residentID id.ResidentID, day id.Day, answers map[string]bool, notes string, recordedBy id.UserID) (*models.UpsertResult, error) {
	now := requestcontext.Now(ctx)
	eval, err := models.NewEvaluation(id.EvaluationID(uuid.New()), residentID, day, answers, notes, recordedBy, now)
	if err != nil {
		return nil, err
	}

	err = s.evaluations.Insert(ctx, eval)
	if err == nil {
		s.incrementUpsert("inserted")
		return &models.UpsertResult{ID: eval.ID, WasUpdate: false}, nil
	}
	if !errors.Is(err, sentinel.ErrConflict) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to insert evaluation")
	}

	s.logger.InfoContext(ctx, "evaluation insert lost duplicate-day race, converging to update",
		"resident_id", residentID,
		"day", day,
	)
	winner, err := s.evaluations.FindByResidentAndDay(ctx, residentID, day)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load winning evaluation after conflict")
	}
	if err := winner.ApplyAnswers(answers, notes, recordedBy, now); err != nil {
		return nil, err
	}
	if err := s.evaluations.Update(ctx, winner); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update evaluation after conflict")
	}
	s.incrementUpsert("updated")
	return &models.UpsertResult{ID: winner.ID, WasUpdate: true}, nil
}

// UpsertBatch commits a bulk evaluation screen for one day. Pending and
// absent residents are skipped, "full" resolves to a clean answer set, and
// deficient items carry their explicit answers. Items are written with
// bounded concurrency; a failing item never aborts its siblings. The returned
// slice is positional with the input.
func (s *Service) UpsertBatch(ctx context.Context, day id.Day, items []models.BatchItem, recordedBy id.UserID) ([]models.BatchItemResult, error) {
	ctx, span := s.tracer.Start(ctx, "evaluation.UpsertBatch")
	defer span.End()
	span.SetAttributes(
		attribute.String("day", day.String()),
		attribute.Int("items", len(items)),
	)

	if day.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "day is required")
	}
	if recordedBy.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "recording user is required")
	}

	results := make([]models.BatchItemResult, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWidth)
	for i, item := range items {
		results[i] = models.BatchItemResult{ResidentID: item.ResidentID, Status: item.Status}

		if !item.Status.Valid() {
			results[i].Err = dErrors.Newf(dErrors.CodeValidation, "unknown bulk status %q", item.Status)
			s.incrementBatchItem("invalid")
			continue
		}
		if item.Status == models.BulkStatusPending || item.Status == models.BulkStatusAbsent {
			results[i].Skipped = true
			s.incrementBatchItem("skipped")
			continue
		}

		answers := item.Answers
		if item.Status == models.BulkStatusFull {
			answers = checklist.DefaultAnswers()
		}

		g.Go(func() error {
			res, err := s.UpsertSingle(gctx, item.ResidentID, day, answers, item.Notes, recordedBy)
			if err != nil {
				results[i].Err = err
				s.incrementBatchItem("failed")
				s.logger.WarnContext(gctx, "bulk commit item failed",
					"resident_id", item.ResidentID,
					"day", day,
					"error", err,
				)
				// Item failures stay in the result slot so siblings keep going.
				return nil
			}
			results[i].Result = res
			s.incrementBatchItem("committed")
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}
