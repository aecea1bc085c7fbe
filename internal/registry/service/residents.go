package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"conduct/internal/registry/models"
	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
	"conduct/pkg/platform/sentinel"
	"conduct/pkg/requestcontext"
)

// CreateResident adds a resident to the roster.
func (s *Service) CreateResident(ctx context.Context, name, room string) (*models.Resident, error) {
	resident, err := models.NewResident(id.ResidentID(uuid.New()), name, room, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.residents.Create(ctx, resident); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create resident")
	}
	return resident, nil
}

// UpdateResident changes a resident's name and room.
func (s *Service) UpdateResident(ctx context.Context, residentID id.ResidentID, name, room string) (*models.Resident, error) {
	current, err := s.GetResident(ctx, residentID)
	if err != nil {
		return nil, err
	}

	updated, err := models.NewResident(residentID, name, room, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	updated.CreatedAt = current.CreatedAt

	if err := s.residents.Update(ctx, updated); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update resident")
	}
	return updated, nil
}

func (s *Service) DeleteResident(ctx context.Context, residentID id.ResidentID) error {
	if residentID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "resident id is required")
	}
	if err := s.residents.Delete(ctx, residentID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "resident not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete resident")
	}
	return nil
}

func (s *Service) GetResident(ctx context.Context, residentID id.ResidentID) (*models.Resident, error) {
	if residentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "resident id is required")
	}
	resident, err := s.residents.FindByID(ctx, residentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "resident not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load resident")
	}
	return resident, nil
}

// ListResidents returns the roster ordered by room, then name.
func (s *Service) ListResidents(ctx context.Context) ([]*models.Resident, error) {
	residents, err := s.residents.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list residents")
	}
	return residents, nil
}
