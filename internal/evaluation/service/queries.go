package service

import (
	"context"
	"errors"

	"conduct/internal/evaluation/models"
	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
	"conduct/pkg/platform/sentinel"
)

const defaultRecentLimit = 50

// GetForResidentDay returns the resident's evaluation for the day, if any.
func (s *Service) GetForResidentDay(ctx context.Context, residentID id.ResidentID, day id.Day) (*models.Evaluation, error) {
	if residentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "resident id is required")
	}
	if day.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "day is required")
	}

	eval, err := s.evaluations.FindByResidentAndDay(ctx, residentID, day)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "evaluation not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load evaluation")
	}
	return eval, nil
}

// ListRange returns evaluations for the inclusive day range, newest day first.
func (s *Service) ListRange(ctx context.Context, start, end id.Day) ([]*models.Evaluation, error) {
	if start.IsZero() || end.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "start and end days are required")
	}
	if start.After(end) {
		return nil, dErrors.New(dErrors.CodeValidation, "start day must not be after end day")
	}

	evals, err := s.evaluations.FindByDayRange(ctx, start, end)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list evaluations")
	}
	return evals, nil
}

// ListRecent returns the most recent evaluations, newest day first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*models.Evaluation, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	evals, err := s.evaluations.ListRecent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list recent evaluations")
	}
	return evals, nil
}

// Delete removes an evaluation record.
func (s *Service) Delete(ctx context.Context, evalID id.EvaluationID) error {
	if evalID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "evaluation id is required")
	}
	if err := s.evaluations.Delete(ctx, evalID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "evaluation not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete evaluation")
	}
	return nil
}

func validateWrite(residentID id.ResidentID, day id.Day, recordedBy id.UserID) error {
	if residentID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "resident id is required")
	}
	if day.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "day is required")
	}
	if recordedBy.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "recording user is required")
	}
	return nil
}
