package resident

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"conduct/internal/registry/models"
	id "conduct/pkg/domain"
	"conduct/pkg/platform/sentinel"
)

// PostgresStore persists the resident roster in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, resident *models.Resident) error {
	const query = `
		INSERT INTO residents (id, name, room, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := s.db.ExecContext(ctx, query,
		resident.ID.String(), resident.Name, resident.Room, resident.CreatedAt, resident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert resident: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, resident *models.Resident) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE residents SET name = $2, room = $3, updated_at = $4 WHERE id = $1`,
		resident.ID.String(), resident.Name, resident.Room, resident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update resident: %w", err)
	}
	return requireRow(res, "update resident")
}

func (s *PostgresStore) Delete(ctx context.Context, residentID id.ResidentID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM residents WHERE id = $1`, residentID.String())
	if err != nil {
		return fmt.Errorf("delete resident: %w", err)
	}
	return requireRow(res, "delete resident")
}

func (s *PostgresStore) FindByID(ctx context.Context, residentID id.ResidentID) (*models.Resident, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, room, created_at, updated_at FROM residents WHERE id = $1`,
		residentID.String())

	var (
		rawID    string
		resident models.Resident
	)
	if err := row.Scan(&rawID, &resident.Name, &resident.Room, &resident.CreatedAt, &resident.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan resident: %w", err)
	}
	parsed, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse resident id: %w", err)
	}
	resident.ID = id.ResidentID(parsed)
	return &resident, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Resident, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, room, created_at, updated_at FROM residents ORDER BY room, name, id`)
	if err != nil {
		return nil, fmt.Errorf("query residents: %w", err)
	}
	defer rows.Close()

	var out []*models.Resident
	for rows.Next() {
		var (
			rawID    string
			resident models.Resident
		)
		if err := rows.Scan(&rawID, &resident.Name, &resident.Room, &resident.CreatedAt, &resident.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan resident: %w", err)
		}
		parsed, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse resident id: %w", err)
		}
		resident.ID = id.ResidentID(parsed)
		out = append(out, &resident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate residents: %w", err)
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
