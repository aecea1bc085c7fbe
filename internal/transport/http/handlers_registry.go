package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"conduct/internal/registry/models"
	regservice "conduct/internal/registry/service"
	"conduct/internal/transport/http/shared"
	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
)

type registryHandler struct {
	svc    *regservice.Service
	logger *slog.Logger
}

func (h *registryHandler) register(r chi.Router) {
	r.Post("/users", h.handleCreateUser)
	r.Get("/users", h.handleListUsers)
	r.Get("/users/{userID}", h.handleGetUser)
	r.Put("/users/{userID}", h.handleUpdateUser)
	r.Delete("/users/{userID}", h.handleDeleteUser)

	r.Post("/residents", h.handleCreateResident)
	r.Get("/residents", h.handleListResidents)
	r.Get("/residents/{residentID}", h.handleGetResident)
	r.Put("/residents/{residentID}", h.handleUpdateResident)
	r.Delete("/residents/{residentID}", h.handleDeleteResident)
}

type userRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

type userResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID.String(),
		DisplayName: u.DisplayName,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
	}
}

type residentRequest struct {
	Name string `json:"name"`
	Room string `json:"room"`
}

type residentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Room      string    `json:"room"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResidentResponse(res *models.Resident) residentResponse {
	return residentResponse{
		ID:        res.ID.String(),
		Name:      res.Name,
		Room:      res.Room,
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
	}
}

func (h *registryHandler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	user, err := h.svc.CreateUser(r.Context(), req.DisplayName, req.Email)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *registryHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"users": out})
}

func (h *registryHandler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	user, err := h.svc.GetUser(r.Context(), userID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *registryHandler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	user, err := h.svc.UpdateUser(r.Context(), userID, req.DisplayName, req.Email)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *registryHandler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.svc.DeleteUser(r.Context(), userID); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *registryHandler) handleCreateResident(w http.ResponseWriter, r *http.Request) {
	var req residentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	resident, err := h.svc.CreateResident(r.Context(), req.Name, req.Room)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, toResidentResponse(resident))
}

func (h *registryHandler) handleListResidents(w http.ResponseWriter, r *http.Request) {
	residents, err := h.svc.ListResidents(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	out := make([]residentResponse, 0, len(residents))
	for _, res := range residents {
		out = append(out, toResidentResponse(res))
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"residents": out})
}

func (h *registryHandler) handleGetResident(w http.ResponseWriter, r *http.Request) {
	residentID, err := id.ParseResidentID(chi.URLParam(r, "residentID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	resident, err := h.svc.GetResident(r.Context(), residentID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toResidentResponse(resident))
}

func (h *registryHandler) handleUpdateResident(w http.ResponseWriter, r *http.Request) {
	residentID, err := id.ParseResidentID(chi.URLParam(r, "residentID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req residentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	resident, err := h.svc.UpdateResident(r.Context(), residentID, req.Name, req.Room)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toResidentResponse(resident))
}

func (h *registryHandler) handleDeleteResident(w http.ResponseWriter, r *http.Request) {
	residentID, err := id.ParseResidentID(chi.URLParam(r, "residentID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.svc.DeleteResident(r.Context(), residentID); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
