// Package service orchestrates evaluation writes and reads.
package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"conduct/internal/evaluation/models"
	"conduct/internal/platform/metrics"
	id "conduct/pkg/domain"
)

// EvaluationStore is the persistence port for evaluation records.
type EvaluationStore interface {
	Insert(ctx context.Context, eval *models.Evaluation) error
	Update(ctx context.Context, eval *models.Evaluation) error
	Delete(ctx context.Context, evalID id.EvaluationID) error
	FindByID(ctx context.Context, evalID id.EvaluationID) (*models.Evaluation, error)
	FindByResidentAndDay(ctx context.Context, residentID id.ResidentID, day id.Day) (*models.Evaluation, error)
	FindByDayRange(ctx context.Context, start, end id.Day) ([]*models.Evaluation, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Evaluation, error)
}

const defaultBatchWidth = 8

// Service coordinates single and bulk evaluation upserts.
type Service struct {
	evaluations EvaluationStore
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	batchWidth  int
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

// WithBatchWidth bounds the number of concurrent writes during a bulk commit.
func WithBatchWidth(width int) Option {
	return func(s *Service) {
		if width > 0 {
			s.batchWidth = width
		}
	}
}

// New constructs a Service.
func New(evaluations EvaluationStore, opts ...Option) *Service {
	s := &Service{
		evaluations: evaluations,
		logger:      slog.Default(),
		tracer:      otel.Tracer("conduct/evaluation"),
		batchWidth:  defaultBatchWidth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) incrementUpsert(result string) {
	if s.metrics != nil {
		s.metrics.IncrementUpsert(result)
	}
}

func (s *Service) incrementBatchItem(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementBatchItem(outcome)
	}
}
