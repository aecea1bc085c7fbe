package evaluation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"conduct/internal/evaluation/models"
	id "conduct/pkg/domain"
	"conduct/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists evaluations in PostgreSQL. The evaluations table
// carries UNIQUE (resident_id, day), so duplicate-day races lose at the
// database and surface as sentinel.ErrConflict.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, eval *models.Evaluation) error {
	answers, err := json.Marshal(eval.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	const query = `
		INSERT INTO evaluations (id, resident_id, day, answers, score, recorded_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = s.db.ExecContext(ctx, query,
		eval.ID.String(), eval.ResidentID.String(), eval.Day.String(),
		answers, eval.Score, eval.RecordedBy.String(), eval.CreatedAt, eval.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert evaluation: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, eval *models.Evaluation) error {
	answers, err := json.Marshal(eval.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	const query = `
		UPDATE evaluations
		SET answers = $2, notes = $3, score = $4, recorded_by = $5, updated_at = $6
		WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query,
		eval.ID.String(), answers, eval.Notes, eval.Score, eval.RecordedBy.String(), eval.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update evaluation: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update evaluation rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, evalID id.EvaluationID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE id = $1`, evalID.String())
	if err != nil {
		return fmt.Errorf("delete evaluation: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete evaluation rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

const selectColumns = `id, resident_id, day, answers, notes, score, recorded_by, created_at, updated_at`

func (s *PostgresStore) FindByID(ctx context.Context, evalID id.EvaluationID) (*models.Evaluation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM evaluations WHERE id = $1`, evalID.String())
	return scanEvaluation(row)
}

func (s *PostgresStore) FindByResidentAndDay(ctx context.Context, residentID id.ResidentID, day id.Day) (*models.Evaluation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM evaluations WHERE resident_id = $1 AND day = $2`,
		residentID.String(), day.String())
	return scanEvaluation(row)
}

func (s *PostgresStore) FindByDayRange(ctx context.Context, start, end id.Day) ([]*models.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM evaluations
		 WHERE day BETWEEN $1 AND $2
		 ORDER BY day DESC, resident_id ASC`,
		start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("query evaluations by day range: %w", err)
	}
	defer rows.Close()
	return scanEvaluations(rows)
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]*models.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM evaluations
		 ORDER BY day DESC, resident_id ASC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent evaluations: %w", err)
	}
	defer rows.Close()
	return scanEvaluations(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(row rowScanner) (*models.Evaluation, error) {
	var (
		evalID, residentID, recordedBy string
		day                            time.Time
		answersRaw                     []byte
		eval                           models.Evaluation
	)
	err := row.Scan(&evalID, &residentID, &day, &answersRaw, &eval.Notes, &eval.Score, &recordedBy, &eval.CreatedAt, &eval.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan evaluation: %w", err)
	}

	evalUUID, err := uuid.Parse(evalID)
	if err != nil {
		return nil, fmt.Errorf("parse evaluation id: %w", err)
	}
	residentUUID, err := uuid.Parse(residentID)
	if err != nil {
		return nil, fmt.Errorf("parse resident id: %w", err)
	}
	recordedByUUID, err := uuid.Parse(recordedBy)
	if err != nil {
		return nil, fmt.Errorf("parse recorded_by id: %w", err)
	}
	if err := json.Unmarshal(answersRaw, &eval.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}

	eval.ID = id.EvaluationID(evalUUID)
	eval.ResidentID = id.ResidentID(residentUUID)
	eval.RecordedBy = id.UserID(recordedByUUID)
	// The day column is DATE; render it back to the canonical form in UTC.
	eval.Day = id.DayOf(day, time.UTC)
	return &eval, nil
}

func scanEvaluations(rows *sql.Rows) ([]*models.Evaluation, error) {
	var out []*models.Evaluation
	for rows.Next() {
		eval, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, eval)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}
	return out, nil
}
