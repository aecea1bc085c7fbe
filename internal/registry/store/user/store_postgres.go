package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"conduct/internal/registry/models"
	id "conduct/pkg/domain"
	"conduct/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists staff users in PostgreSQL. The users table carries a
// unique index on lower(email).
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, user *models.User) error {
	const query = `
		INSERT INTO users (id, display_name, email, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := s.db.ExecContext(ctx, query,
		user.ID.String(), user.DisplayName, user.Email, user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, user *models.User) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET display_name = $2, email = $3 WHERE id = $1`,
		user.ID.String(), user.DisplayName, user.Email)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update user: %w", err)
	}
	return requireRow(res, "update user")
}

func (s *PostgresStore) Delete(ctx context.Context, userID id.UserID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID.String())
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireRow(res, "delete user")
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, display_name, email, created_at FROM users WHERE id = $1`,
		userID.String())

	var (
		rawID string
		user  models.User
	)
	if err := row.Scan(&rawID, &user.DisplayName, &user.Email, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	parsed, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	user.ID = id.UserID(parsed)
	return &user, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, display_name, email, created_at FROM users ORDER BY display_name, id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []*models.User
	for rows.Next() {
		var (
			rawID string
			user  models.User
		)
		if err := rows.Scan(&rawID, &user.DisplayName, &user.Email, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		parsed, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse user id: %w", err)
		}
		user.ID = id.UserID(parsed)
		out = append(out, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListIDs(ctx context.Context) ([]id.UserID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM users`)
	if err != nil {
		return nil, fmt.Errorf("query user ids: %w", err)
	}
	defer rows.Close()

	var out []id.UserID
	for rows.Next() {
		var rawID string
		if err := rows.Scan(&rawID); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		parsed, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse user id: %w", err)
		}
		out = append(out, id.UserID(parsed))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user ids: %w", err)
	}
	return out, nil
}

func requireRow(res sql.Result, op string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
