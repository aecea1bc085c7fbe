package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"conduct/internal/notes/models"
	notesservice "conduct/internal/notes/service"
	"conduct/internal/platform/middleware"
	"conduct/internal/transport/http/shared"
	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
)

type notesHandler struct {
	svc    *notesservice.Service
	logger *slog.Logger
}

func (h *notesHandler) register(r chi.Router) {
	r.Post("/notes", h.handleCreate)
	r.Get("/notes", h.handleList)
	r.Get("/notes/{noteID}", h.handleGet)
	r.Put("/notes/{noteID}", h.handleUpdate)
	r.Delete("/notes/{noteID}", h.handleDelete)
	r.Post("/notes/{noteID}/comments", h.handleAddComment)
	r.Get("/notes/{noteID}/comments", h.handleListComments)
	r.Delete("/notes/{noteID}/comments/{commentID}", h.handleDeleteComment)
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toNoteResponse(n *models.Note) noteResponse {
	return noteResponse{
		ID:        n.ID.String(),
		AuthorID:  n.AuthorID.String(),
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

type commentRequest struct {
	Content string `json:"content"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	NoteID    string    `json:"note_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toCommentResponse(c *models.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID.String(),
		NoteID:    c.NoteID.String(),
		AuthorID:  c.AuthorID.String(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func (h *notesHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	note, err := h.svc.CreateNote(ctx, middleware.GetUserID(ctx), req.Title, req.Content)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, toNoteResponse(note))
}

func (h *notesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.ListNotes(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"notes": out})
}

func (h *notesHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	noteID, err := id.ParseNoteID(chi.URLParam(r, "noteID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	note, err := h.svc.GetNote(r.Context(), noteID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toNoteResponse(note))
}

func (h *notesHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	noteID, err := id.ParseNoteID(chi.URLParam(r, "noteID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	note, err := h.svc.UpdateNote(ctx, noteID, middleware.GetUserID(ctx), req.Title, req.Content)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toNoteResponse(note))
}

func (h *notesHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	noteID, err := id.ParseNoteID(chi.URLParam(r, "noteID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.svc.DeleteNote(ctx, noteID, middleware.GetUserID(ctx)); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *notesHandler) handleAddComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	noteID, err := id.ParseNoteID(chi.URLParam(r, "noteID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	comment, err := h.svc.AddComment(ctx, noteID, middleware.GetUserID(ctx), req.Content)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, toCommentResponse(comment))
}

func (h *notesHandler) handleListComments(w http.ResponseWriter, r *http.Request) {
	noteID, err := id.ParseNoteID(chi.URLParam(r, "noteID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	comments, err := h.svc.ListComments(r.Context(), noteID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"comments": out})
}

func (h *notesHandler) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	noteID, err := id.ParseNoteID(chi.URLParam(r, "noteID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	commentID, err := id.ParseCommentID(chi.URLParam(r, "commentID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.svc.DeleteComment(ctx, noteID, commentID, middleware.GetUserID(ctx)); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
