package service

import (
	"context"
	"errors"

	"conduct/internal/notification/models"
	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
	"conduct/pkg/platform/sentinel"
)

// ListForUser returns the recipient's notifications, newest first, capped at
// the inbox limit.
func (s *Service) ListForUser(ctx context.Context, userID id.UserID) ([]*models.Notification, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "user id is required")
	}
	notifs, err := s.notifications.ListForUser(ctx, userID, listLimit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notifications")
	}
	return notifs, nil
}

// CountUnread returns the badge count. A storage failure degrades to zero so
// the surrounding page never fails over an unavailable counter.
func (s *Service) CountUnread(ctx context.Context, userID id.UserID) int {
	if userID.IsNil() {
		return 0
	}
	count, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "unread count unavailable, degrading to zero",
			"user_id", userID,
			"error", err,
		)
		return 0
	}
	return count
}

// MarkRead flags one of the recipient's notifications as read. Marking an
// already-read record succeeds.
func (s *Service) MarkRead(ctx context.Context, userID id.UserID, notifID id.NotificationID) error {
	if userID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "user id is required")
	}
	if notifID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "notification id is required")
	}
	if err := s.notifications.MarkRead(ctx, userID, notifID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "notification not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark notification read")
	}
	return nil
}

// MarkAllRead flags every unread notification for the recipient. The pass is
// best-effort per record: a failing record is reported and the rest are still
// marked.
func (s *Service) MarkAllRead(ctx context.Context, userID id.UserID) (*models.MarkAllReport, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "user id is required")
	}

	unread, err := s.notifications.ListUnread(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list unread notifications")
	}

	report := &models.MarkAllReport{}
	for _, notif := range unread {
		if err := s.notifications.MarkRead(ctx, userID, notif.ID); err != nil {
			report.Failures = append(report.Failures, models.RecipientFailure{UserID: userID, Err: err})
			s.logger.WarnContext(ctx, "failed to mark notification read",
				"user_id", userID,
				"notification_id", notif.ID,
				"error", err,
			)
			continue
		}
		report.Marked++
	}
	return report, nil
}
