package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"voicenotes-backend/application/services"
	"voicenotes-backend/domain/notes"
	"voicenotes-backend/pkg/api"
	"voicenotes-backend/pkg/utils"
)

// NoteHandler handles note CRUD requests.
type NoteHandler struct {
	notes  *services.NoteService
	logger *zap.Logger
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(service *services.NoteService, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{
		notes:  service,
		logger: logger,
	}
}

// List handles GET /api/notes. Optional collection and tag query
// params narrow the result server-side.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		result []notes.Note
		err    error
	)

	switch {
	case r.URL.Query().Get("collection") != "":
		result, err = h.notes.NotesByCollection(r.Context(), r.URL.Query().Get("collection"))
	case r.URL.Query().Get("tag") != "":
		result, err = h.notes.NotesByTag(r.Context(), r.URL.Query().Get("tag"))
	default:
		result, err = h.notes.Notes(r.Context())
	}
	if err != nil {
		h.logger.Error("Listing notes failed", zap.Error(err))
		api.ErrorFrom(w, err, "Failed to fetch notes")
		return
	}

	api.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"notes":   result,
	})
}

// GetBySlug handles GET /api/notes/{slug}.
func (h *NoteHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	note, err := h.notes.NoteBySlug(r.Context(), slug)
	if err != nil {
		h.logger.Error("Fetching note failed", zap.String("slug", slug), zap.Error(err))
		api.ErrorFrom(w, err, "Failed to fetch note")
		return
	}
	if note == nil {
		api.Error(w, http.StatusNotFound, "Note not found")
		return
	}

	api.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"note":    note,
	})
}

// Create handles POST /api/notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var data notes.CreateNoteData
	if err := api.ParseJSONBody(r, &data, 1<<20); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(data); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.notes.Create(r.Context(), data)
	if err != nil {
		h.logger.Error("Creating note failed", zap.Error(err))
		api.ErrorFrom(w, err, "Failed to create note")
		return
	}

	api.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"note":    note,
	})
}

// Update handles PUT /api/notes?id=<id>.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "Note ID is required")
		return
	}

	var data notes.UpdateNoteData
	if err := api.ParseJSONBody(r, &data, 1<<20); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.notes.Update(r.Context(), id, data)
	if err != nil {
		h.logger.Error("Updating note failed", zap.String("id", id), zap.Error(err))
		api.ErrorFrom(w, err, "Failed to update note")
		return
	}

	api.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"note":    note,
	})
}

// Delete handles DELETE /api/notes?id=<id>.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "Note ID is required")
		return
	}

	if err := h.notes.Delete(r.Context(), id); err != nil {
		h.logger.Error("Deleting note failed", zap.String("id", id), zap.Error(err))
		api.ErrorFrom(w, err, "Failed to delete note")
		return
	}

	api.JSON(w, http.StatusOK, map[string]any{
		"success": true,
	})
}
