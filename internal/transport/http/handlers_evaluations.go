package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"conduct/internal/evaluation/models"
	evalservice "conduct/internal/evaluation/service"
	"conduct/internal/platform/middleware"
	"conduct/internal/transport/http/shared"
	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
	"conduct/pkg/requestcontext"
)

type evaluationHandler struct {
	svc    *evalservice.Service
	logger *slog.Logger
	loc    *time.Location
}

// parseDay resolves a day path or query value. The literal "today" maps to
// the current day in the configured reference zone.
func (h *evaluationHandler) parseDay(r *http.Request, raw string) (id.Day, error) {
	if raw == "today" {
		return id.DayOf(requestcontext.Now(r.Context()), h.loc), nil
	}
	return id.ParseDay(raw)
}

func (h *evaluationHandler) register(r chi.Router) {
	r.Put("/evaluations/{residentID}/{day}", h.handleUpsert)
	r.Get("/evaluations/{residentID}/{day}", h.handleGet)
	r.Post("/evaluations/batch", h.handleBatch)
	r.Get("/evaluations", h.handleList)
	r.Delete("/evaluations/{evaluationID}", h.handleDelete)
}

type upsertRequest struct {
	Answers map[string]bool `json:"answers"`
	Notes   string          `json:"notes"`
}

type upsertResponse struct {
	ID      string `json:"id"`
	Updated bool   `json:"updated"`
}

type evaluationResponse struct {
	ID         string          `json:"id"`
	ResidentID string          `json:"resident_id"`
	Day        string          `json:"day"`
	Answers    map[string]bool `json:"answers"`
	Notes      string          `json:"notes"`
	Score      int             `json:"score"`
	RecordedBy string          `json:"recorded_by"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func toEvaluationResponse(e *models.Evaluation) evaluationResponse {
	return evaluationResponse{
		ID:         e.ID.String(),
		ResidentID: e.ResidentID.String(),
		Day:        e.Day.String(),
		Answers:    e.Answers,
		Notes:      e.Notes,
		Score:      e.Score,
		RecordedBy: e.RecordedBy.String(),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func (h *evaluationHandler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	residentID, err := id.ParseResidentID(chi.URLParam(r, "residentID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	day, err := h.parseDay(r, chi.URLParam(r, "day"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.svc.UpsertSingle(ctx, residentID, day, req.Answers, req.Notes, middleware.GetUserID(ctx))
	if err != nil {
		h.logError(r, "upsert evaluation failed", err)
		shared.WriteError(w, err)
		return
	}

	status := http.StatusCreated
	if result.WasUpdate {
		status = http.StatusOK
	}
	shared.WriteJSON(w, status, upsertResponse{ID: result.ID.String(), Updated: result.WasUpdate})
}

func (h *evaluationHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	residentID, err := id.ParseResidentID(chi.URLParam(r, "residentID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	day, err := h.parseDay(r, chi.URLParam(r, "day"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	eval, err := h.svc.GetForResidentDay(ctx, residentID, day)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toEvaluationResponse(eval))
}

type batchRequest struct {
	Day   string             `json:"day"`
	Items []batchItemRequest `json:"items"`
}

type batchItemRequest struct {
	ResidentID string          `json:"resident_id"`
	Status     string          `json:"status"`
	Answers    map[string]bool `json:"answers,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

type batchItemResponse struct {
	ResidentID string `json:"resident_id"`
	Status     string `json:"status"`
	Skipped    bool   `json:"skipped"`
	ID         string `json:"id,omitempty"`
	Updated    bool   `json:"updated,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (h *evaluationHandler) handleBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	rawDay := req.Day
	if rawDay == "" {
		rawDay = r.URL.Query().Get("day")
	}
	day, err := h.parseDay(r, rawDay)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	items := make([]models.BatchItem, 0, len(req.Items))
	for _, item := range req.Items {
		residentID, err := id.ParseResidentID(item.ResidentID)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		items = append(items, models.BatchItem{
			ResidentID: residentID,
			Status:     models.BulkStatus(item.Status),
			Answers:    item.Answers,
			Notes:      item.Notes,
		})
	}

	results, err := h.svc.UpsertBatch(ctx, day, items, middleware.GetUserID(ctx))
	if err != nil {
		h.logError(r, "batch upsert failed", err)
		shared.WriteError(w, err)
		return
	}

	out := make([]batchItemResponse, 0, len(results))
	for _, res := range results {
		item := batchItemResponse{
			ResidentID: res.ResidentID.String(),
			Status:     string(res.Status),
			Skipped:    res.Skipped,
		}
		if res.Err != nil {
			item.Error = string(dErrors.CodeOf(res.Err))
		}
		if res.Result != nil {
			item.ID = res.Result.ID.String()
			item.Updated = res.Result.WasUpdate
		}
		out = append(out, item)
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"day": day.String(), "results": out})
}

func (h *evaluationHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	startParam := r.URL.Query().Get("start")
	endParam := r.URL.Query().Get("end")

	var evals []*models.Evaluation
	var err error
	if startParam == "" && endParam == "" {
		evals, err = h.svc.ListRecent(ctx, 0)
	} else {
		var start, end id.Day
		if start, err = id.ParseDay(startParam); err != nil {
			shared.WriteError(w, err)
			return
		}
		if end, err = id.ParseDay(endParam); err != nil {
			shared.WriteError(w, err)
			return
		}
		evals, err = h.svc.ListRange(ctx, start, end)
	}
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	out := make([]evaluationResponse, 0, len(evals))
	for _, e := range evals {
		out = append(out, toEvaluationResponse(e))
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"evaluations": out})
}

func (h *evaluationHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	evalID, err := id.ParseEvaluationID(chi.URLParam(r, "evaluationID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.svc.Delete(r.Context(), evalID); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *evaluationHandler) logError(r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		"error", err.Error(),
		"request_id", middleware.GetRequestID(r.Context()),
	)
}
