// Package service manages the staff directory and resident roster.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"conduct/internal/registry/models"
	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
	"conduct/pkg/email"
	"conduct/pkg/platform/sentinel"
	"conduct/pkg/requestcontext"
)

// UserStore is the persistence port for staff users.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, userID id.UserID) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	ListIDs(ctx context.Context) ([]id.UserID, error)
}

// ResidentStore is the persistence port for the resident roster.
type ResidentStore interface {
	Create(ctx context.Context, resident *models.Resident) error
	Update(ctx context.Context, resident *models.Resident) error
	Delete(ctx context.Context, residentID id.ResidentID) error
	FindByID(ctx context.Context, residentID id.ResidentID) (*models.Resident, error)
	List(ctx context.Context) ([]*models.Resident, error)
}

// Service manages users and residents and doubles as the fan-out directory.
type Service struct {
	users     UserStore
	residents ResidentStore
	logger    *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs a Service.
func New(users UserStore, residents ResidentStore, opts ...Option) *Service {
	s := &Service{users: users, residents: residents, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser registers a staff user. An empty display name is derived from
// the email's local part.
func (s *Service) CreateUser(ctx context.Context, displayName, emailAddr string) (*models.User, error) {
	if strings.TrimSpace(displayName) == "" {
		first, last := email.DeriveNameFromEmail(emailAddr)
		displayName = fmt.Sprintf("%s %s", first, last)
	}

	user, err := models.NewUser(id.UserID(uuid.New()), displayName, emailAddr, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}
	return user, nil
}

// UpdateUser changes a user's display name and email.
func (s *Service) UpdateUser(ctx context.Context, userID id.UserID, displayName, emailAddr string) (*models.User, error) {
	current, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated, err := models.NewUser(userID, displayName, emailAddr, current.CreatedAt)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.users.Update(ctx, updated); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update user")
	}
	return updated, nil
}

func (s *Service) DeleteUser(ctx context.Context, userID id.UserID) error {
	if userID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "user id is required")
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user")
	}
	return nil
}

func (s *Service) GetUser(ctx context.Context, userID id.UserID) (*models.User, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "user id is required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	return users, nil
}

// ListUserIDs implements the notification fan-out directory port.
func (s *Service) ListUserIDs(ctx context.Context) ([]id.UserID, error) {
	return s.users.ListIDs(ctx)
}
