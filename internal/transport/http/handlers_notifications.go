package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"conduct/internal/notification/models"
	notifservice "conduct/internal/notification/service"
	"conduct/internal/platform/middleware"
	"conduct/internal/transport/http/shared"
	id "conduct/pkg/domain"
)

type notificationHandler struct {
	svc    *notifservice.Service
	logger *slog.Logger
}

func (h *notificationHandler) register(r chi.Router) {
	r.Get("/notifications", h.handleList)
	r.Get("/notifications/unread-count", h.handleUnreadCount)
	r.Post("/notifications/{notificationID}/read", h.handleMarkRead)
	r.Post("/notifications/read-all", h.handleMarkAllRead)
}

type notificationResponse struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	Message    string    `json:"message"`
	SubjectRef string    `json:"subject_ref,omitempty"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

func toNotificationResponse(n *models.Notification) notificationResponse {
	return notificationResponse{
		ID:         n.ID.String(),
		AuthorID:   n.AuthorID.String(),
		Message:    n.Message,
		SubjectRef: n.SubjectRef,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
	}
}

func (h *notificationHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notifs, err := h.svc.ListForUser(ctx, middleware.GetUserID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	out := make([]notificationResponse, 0, len(notifs))
	for _, n := range notifs {
		out = append(out, toNotificationResponse(n))
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"notifications": out})
}

func (h *notificationHandler) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	count := h.svc.CountUnread(ctx, middleware.GetUserID(ctx))
	shared.WriteJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *notificationHandler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notifID, err := id.ParseNotificationID(chi.URLParam(r, "notificationID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.svc.MarkRead(ctx, middleware.GetUserID(ctx), notifID); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *notificationHandler) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.svc.MarkAllRead(ctx, middleware.GetUserID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if len(report.Failures) > 0 {
		h.logger.WarnContext(ctx, "mark-all-read left unread notifications behind",
			"failed", len(report.Failures),
			"request_id", middleware.GetRequestID(ctx),
		)
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int{
		"marked": report.Marked,
		"failed": len(report.Failures),
	})
}
