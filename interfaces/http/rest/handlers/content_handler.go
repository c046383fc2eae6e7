package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"voicenotes-backend/application/services"
	"voicenotes-backend/pkg/api"
)

// ContentHandler serves the organizational read endpoints: collections
// and tags.
type ContentHandler struct {
	notes  *services.NoteService
	logger *zap.Logger
}

// NewContentHandler creates a new content handler.
func NewContentHandler(service *services.NoteService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		notes:  service,
		logger: logger,
	}
}

// Collections handles GET /api/collections.
func (h *ContentHandler) Collections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.notes.Collections(r.Context())
	if err != nil {
		h.logger.Error("Listing collections failed", zap.Error(err))
		api.ErrorFrom(w, err, "Failed to fetch collections")
		return
	}
	api.JSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"collections": collections,
	})
}

// Tags handles GET /api/tags.
func (h *ContentHandler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.notes.Tags(r.Context())
	if err != nil {
		h.logger.Error("Listing tags failed", zap.Error(err))
		api.ErrorFrom(w, err, "Failed to fetch tags")
		return
	}
	api.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"tags":    tags,
	})
}
