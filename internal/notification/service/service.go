// Package service orchestrates notification fan-out and the per-user inbox.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"conduct/internal/notification/models"
	"conduct/internal/platform/metrics"
	id "conduct/pkg/domain"
)

// NotificationStore is the persistence port for notification records.
type NotificationStore interface {
	Create(ctx context.Context, notif *models.Notification) error
	ListForUser(ctx context.Context, userID id.UserID, limit int) ([]*models.Notification, error)
	ListUnread(ctx context.Context, userID id.UserID) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID id.UserID) (int, error)
	MarkRead(ctx context.Context, userID id.UserID, notifID id.NotificationID) error
}

// UserDirectory supplies the recipient universe for fan-out.
type UserDirectory interface {
	ListUserIDs(ctx context.Context) ([]id.UserID, error)
}

const (
	defaultFanoutWidth   = 8
	defaultDetachTimeout = 30 * time.Second

	// listLimit caps the inbox read; older items stay in the store but off
	// the feed.
	listLimit = 50
)

// Service delivers notifications to every user except the author and serves
// the per-user inbox reads.
type Service struct {
	notifications NotificationStore
	users         UserDirectory
	logger        *slog.Logger
	metrics       *metrics.Metrics
	tracer        trace.Tracer
	fanoutWidth   int
	detachTimeout time.Duration
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithFanoutWidth bounds the number of concurrent recipient writes.
func WithFanoutWidth(width int) Option {
	return func(s *Service) {
		if width > 0 {
			s.fanoutWidth = width
		}
	}
}

// WithDetachTimeout bounds how long a detached fan-out may keep running after
// the triggering request has returned.
func WithDetachTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.detachTimeout = timeout
		}
	}
}

// New constructs a Service.
func New(notifications NotificationStore, users UserDirectory, opts ...Option) *Service {
	s := &Service{
		notifications: notifications,
		users:         users,
		logger:        slog.Default(),
		tracer:        otel.Tracer("conduct/notification"),
		fanoutWidth:   defaultFanoutWidth,
		detachTimeout: defaultDetachTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
