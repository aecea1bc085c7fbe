package httptransport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"conduct/internal/platform/middleware"
	"conduct/internal/report"
	"conduct/internal/transport/http/shared"
	id "conduct/pkg/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type reportHandler struct {
	builder *report.Builder
	logger  *slog.Logger
}

func (h *reportHandler) register(r chi.Router) {
	r.Get("/reports/evaluations.xlsx", h.handleEvaluationReport)
}

func (h *reportHandler) handleEvaluationReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	start, err := id.ParseDay(r.URL.Query().Get("start"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	end, err := id.ParseDay(r.URL.Query().Get("end"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	data, err := h.builder.Build(ctx, start, end)
	if err != nil {
		h.logger.ErrorContext(ctx, "report build failed",
			"error", err.Error(),
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}

	filename := fmt.Sprintf("evaluations_%s_%s.xlsx", start, end)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
