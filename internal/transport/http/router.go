// Package httptransport is the thin HTTP layer. Handlers decode requests,
// delegate to domain services and render responses; business logic stays out.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	evalservice "conduct/internal/evaluation/service"
	notesservice "conduct/internal/notes/service"
	notifservice "conduct/internal/notification/service"
	"conduct/internal/platform/metrics"
	"conduct/internal/platform/middleware"
	regservice "conduct/internal/registry/service"
	"conduct/internal/report"
)

const requestTimeout = 30 * time.Second

// Services bundles the domain services the router exposes.
type Services struct {
	Evaluations   *evalservice.Service
	Notifications *notifservice.Service
	Notes         *notesservice.Service
	Registry      *regservice.Service
	Reports       *report.Builder
}

// NewRouter wires all endpoints. Health and metrics are open; everything else
// sits behind JWT auth. Day boundaries for the "today" shorthand are computed
// in loc; nil means UTC.
func NewRouter(svcs Services, loc *time.Location, logger *slog.Logger, m *metrics.Metrics, validator middleware.JWTValidator) http.Handler {
	if loc == nil {
		loc = time.UTC
	}
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Latency(m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireAuth(validator, logger))

		(&evaluationHandler{svc: svcs.Evaluations, logger: logger, loc: loc}).register(r)
		(&notificationHandler{svc: svcs.Notifications, logger: logger}).register(r)
		(&notesHandler{svc: svcs.Notes, logger: logger}).register(r)
		(&registryHandler{svc: svcs.Registry, logger: logger}).register(r)
		(&reportHandler{builder: svcs.Reports, logger: logger}).register(r)
	})

	return r
}
