package note

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"conduct/internal/notes/models"
	id "conduct/pkg/domain"
	"conduct/pkg/platform/sentinel"
)

const foreignKeyViolation = "23503"

// PostgresStore persists notes and comments in PostgreSQL. Comments reference
// notes with ON DELETE CASCADE, so note removal drops the thread.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, note *models.Note) error {
	const query = `
		INSERT INTO notes (id, author_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.db.ExecContext(ctx, query,
		note.ID.String(), note.AuthorID.String(), note.Title, note.Content, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, note *models.Note) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET title = $2, content = $3, updated_at = $4 WHERE id = $1`,
		note.ID.String(), note.Title, note.Content, note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return requireRow(res, "update note")
}

func (s *PostgresStore) Delete(ctx context.Context, noteID id.NoteID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, noteID.String())
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return requireRow(res, "delete note")
}

func (s *PostgresStore) FindByID(ctx context.Context, noteID id.NoteID) (*models.Note, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, author_id, title, content, created_at, updated_at FROM notes WHERE id = $1`,
		noteID.String())
	return scanNote(row)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, author_id, title, content, created_at, updated_at
		 FROM notes ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var out []*models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) InsertComment(ctx context.Context, comment *models.Comment) error {
	const query = `
		INSERT INTO comments (id, note_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := s.db.ExecContext(ctx, query,
		comment.ID.String(), comment.NoteID.String(), comment.AuthorID.String(), comment.Content, comment.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteComment(ctx context.Context, commentID id.CommentID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID.String())
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return requireRow(res, "delete comment")
}

func (s *PostgresStore) ListComments(ctx context.Context, noteID id.NoteID) ([]*models.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, note_id, author_id, content, created_at
		 FROM comments WHERE note_id = $1
		 ORDER BY created_at ASC, id ASC`, noteID.String())
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var out []*models.Comment
	for rows.Next() {
		var (
			rawID, rawNoteID, rawAuthorID string
			comment                       models.Comment
		)
		if err := rows.Scan(&rawID, &rawNoteID, &rawAuthorID, &comment.Content, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		commentUUID, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse comment id: %w", err)
		}
		noteUUID, err := uuid.Parse(rawNoteID)
		if err != nil {
			return nil, fmt.Errorf("parse comment note id: %w", err)
		}
		authorUUID, err := uuid.Parse(rawAuthorID)
		if err != nil {
			return nil, fmt.Errorf("parse comment author id: %w", err)
		}
		comment.ID = id.CommentID(commentUUID)
		comment.NoteID = id.NoteID(noteUUID)
		comment.AuthorID = id.UserID(authorUUID)
		out = append(out, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*models.Note, error) {
	var (
		rawID, rawAuthorID string
		note               models.Note
	)
	err := row.Scan(&rawID, &rawAuthorID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}
	noteUUID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse note id: %w", err)
	}
	authorUUID, err := uuid.Parse(rawAuthorID)
	if err != nil {
		return nil, fmt.Errorf("parse note author id: %w", err)
	}
	note.ID = id.NoteID(noteUUID)
	note.AuthorID = id.UserID(authorUUID)
	return &note, nil
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
