package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"conduct/internal/platform/metrics"
)

// requestDurationRoutes returns the route label values currently collected
// on the request duration histogram.
func requestDurationRoutes(t *testing.T) []string {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var routes []string
	for _, fam := range families {
		if fam.GetName() != "conduct_http_request_duration_seconds" {
			continue
		}
		for _, m := range fam.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "route" {
					routes = append(routes, label.GetValue())
				}
			}
		}
	}
	return routes
}

func TestLatencyLabelsByRoutePattern(t *testing.T) {
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(Latency(m))
	r.Get("/evaluations/{residentID}/{day}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, day := range []string{"2026-03-01", "2026-03-02"} {
		req := httptest.NewRequest(http.MethodGet, "/evaluations/abc/"+day, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
	}

	routes := requestDurationRoutes(t)
	require.Equal(t, []string{"/evaluations/{residentID}/{day}"}, routes,
		"distinct paths on one route must share a single series")
}
