package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	EvaluationUpserts      *prometheus.CounterVec
	BatchItems             *prometheus.CounterVec
	NotificationsDelivered prometheus.Counter
	NotificationFailures   prometheus.Counter
	NotesCreated           prometheus.Counter
	RequestDuration        *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		EvaluationUpserts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "conduct_evaluation_upserts_total",
			Help: "Total number of evaluation upserts by result (inserted or updated)",
		}, []string{"result"}),
		BatchItems: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "conduct_batch_items_total",
			Help: "Total number of bulk commit items by outcome",
		}, []string{"outcome"}),
		NotificationsDelivered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "conduct_notifications_delivered_total",
			Help: "Total number of notification records written by fan-out",
		}),
		NotificationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "conduct_notification_failures_total",
			Help: "Total number of per-recipient fan-out failures",
		}),
		NotesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "conduct_notes_created_total",
			Help: "Total number of notes created on the shared feed",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "conduct_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// IncrementUpsert records one evaluation upsert with its result label.
func (m *Metrics) IncrementUpsert(result string) {
	m.EvaluationUpserts.WithLabelValues(result).Inc()
}

// IncrementBatchItem records one bulk commit item outcome.
func (m *Metrics) IncrementBatchItem(outcome string) {
	m.BatchItems.WithLabelValues(outcome).Inc()
}

// ObserveRequest records one HTTP request duration in seconds.
func (m *Metrics) ObserveRequest(method, route string, seconds float64) {
	m.RequestDuration.WithLabelValues(method, route).Observe(seconds)
}
