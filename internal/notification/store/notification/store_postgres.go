package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"conduct/internal/notification/models"
	id "conduct/pkg/domain"
	"conduct/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists notifications in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, notif *models.Notification) error {
	const query = `
		INSERT INTO notifications (id, user_id, author_id, message, subject_ref, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.db.ExecContext(ctx, query,
		notif.ID.String(), notif.UserID.String(), notif.AuthorID.String(), notif.Message, notif.SubjectRef, notif.Read, notif.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListForUser(ctx context.Context, userID id.UserID, limit int) ([]*models.Notification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, author_id, message, subject_ref, read, created_at
		 FROM notifications
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id ASC
		 LIMIT $2`, userID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()
	return scanNotifications(rows)
}

func (s *PostgresStore) ListUnread(ctx context.Context, userID id.UserID) ([]*models.Notification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, author_id, message, subject_ref, read, created_at
		 FROM notifications
		 WHERE user_id = $1 AND read = FALSE
		 ORDER BY created_at DESC, id ASC`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("query unread notifications: %w", err)
	}
	defer rows.Close()
	return scanNotifications(rows)
}

func (s *PostgresStore) CountUnread(ctx context.Context, userID id.UserID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`,
		userID.String()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) MarkRead(ctx context.Context, userID id.UserID, notifID id.NotificationID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`,
		notifID.String(), userID.String())
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification read rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func scanNotifications(rows *sql.Rows) ([]*models.Notification, error) {
	var out []*models.Notification
	for rows.Next() {
		var (
			notifID, userID, authorID string
			notif                     models.Notification
		)
		if err := rows.Scan(&notifID, &userID, &authorID, &notif.Message, &notif.SubjectRef, &notif.Read, &notif.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifUUID, err := uuid.Parse(notifID)
		if err != nil {
			return nil, fmt.Errorf("parse notification id: %w", err)
		}
		userUUID, err := uuid.Parse(userID)
		if err != nil {
			return nil, fmt.Errorf("parse notification user id: %w", err)
		}
		authorUUID, err := uuid.Parse(authorID)
		if err != nil {
			return nil, fmt.Errorf("parse notification author id: %w", err)
		}
		notif.ID = id.NotificationID(notifUUID)
		notif.UserID = id.UserID(userUUID)
		notif.AuthorID = id.UserID(authorUUID)
		out = append(out, &notif)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return out, nil
}
