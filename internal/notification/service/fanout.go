package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"conduct/internal/notification/models"
	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
	"conduct/pkg/requestcontext"
)

// Notify writes one notification record per user in the directory, excluding
// the author. Recipient writes run with bounded concurrency; a failed
// recipient is logged and reported, and never fails the fan-out as a whole.
// Only a directory listing failure is returned as an error.
func (s *Service) Notify(ctx context.Context, author id.UserID, message, subjectRef string) (*models.FanoutReport, error) {
	ctx, span := s.tracer.Start(ctx, "notification.Notify")
	defer span.End()

	if author.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "author is required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "message is required")
	}

	userIDs, err := s.users.ListUserIDs(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notification recipients")
	}

	recipients := make([]id.UserID, 0, len(userIDs))
	for _, userID := range userIDs {
		if userID != author {
			recipients = append(recipients, userID)
		}
	}
	span.SetAttributes(attribute.Int("recipients", len(recipients)))

	now := requestcontext.Now(ctx)
	report := &models.FanoutReport{Recipients: len(recipients)}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanoutWidth)
	for _, userID := range recipients {
		g.Go(func() error {
			err := s.deliver(gctx, userID, author, message, subjectRef, now)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failures = append(report.Failures, models.RecipientFailure{UserID: userID, Err: err})
				return nil
			}
			report.Delivered++
			return nil
		})
	}
	_ = g.Wait()

	for _, failure := range report.Failures {
		s.logger.WarnContext(ctx, "notification delivery failed",
			"recipient", failure.UserID,
			"subject_ref", subjectRef,
			"error", failure.Err,
		)
		if s.metrics != nil {
			s.metrics.NotificationFailures.Inc()
		}
	}
	if s.metrics != nil {
		s.metrics.NotificationsDelivered.Add(float64(report.Delivered))
	}

	return report, nil
}

func (s *Service) deliver(ctx context.Context, userID, author id.UserID, message, subjectRef string, now time.Time) error {
	notif, err := models.NewNotification(id.NotificationID(uuid.New()), userID, author, message, subjectRef, now)
	if err != nil {
		return err
	}
	return s.notifications.Create(ctx, notif)
}

// NotifyDetached runs Notify on a task detached from the caller's request:
// the triggering write returns immediately and its cancellation does not stop
// delivery. The detached run carries its own deadline and the outcome is
// logged rather than returned.
func (s *Service) NotifyDetached(ctx context.Context, author id.UserID, message, subjectRef string) {
	// Keep request-scoped values (request id, clock) but drop cancellation.
	detached := context.WithoutCancel(ctx)

	go func() {
		dctx, cancel := context.WithTimeout(detached, s.detachTimeout)
		defer cancel()

		report, err := s.Notify(dctx, author, message, subjectRef)
		if err != nil {
			s.logger.ErrorContext(dctx, "detached notification fan-out failed",
				"author", author,
				"subject_ref", subjectRef,
				"error", err,
			)
			return
		}
		s.logger.InfoContext(dctx, "notification fan-out complete",
			"author", author,
			"subject_ref", subjectRef,
			"recipients", report.Recipients,
			"delivered", report.Delivered,
			"failed", len(report.Failures),
		)
	}()
}
