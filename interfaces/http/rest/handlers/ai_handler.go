package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"voicenotes-backend/application/ports"
	"voicenotes-backend/pkg/api"
	apperrors "voicenotes-backend/pkg/errors"
)

// GenerateRequest carries the content to generate from.
type GenerateRequest struct {
	Content string `json:"content"`
}

// TitleResponse is the title generation result.
type TitleResponse struct {
	Success bool   `json:"success"`
	Title   string `json:"title"`
}

// SummaryResponse is the summary generation result.
type SummaryResponse struct {
	Success bool   `json:"success"`
	Summary string `json:"summary"`
}

// AIHandler handles title and summary generation requests.
type AIHandler struct {
	generator ports.Generator
	logger    *zap.Logger
}

// NewAIHandler creates a new AI handler.
func NewAIHandler(generator ports.Generator, logger *zap.Logger) *AIHandler {
	return &AIHandler{
		generator: generator,
		logger:    logger,
	}
}

// Title handles POST /api/ai/title.
func (h *AIHandler) Title(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := api.ParseJSONBody(r, &req, 1<<20); err != nil {
		api.Error(w, http.StatusBadRequest, "Content is required and must be a string")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		api.Error(w, http.StatusBadRequest, "Content cannot be empty")
		return
	}

	title, err := h.generator.Title(r.Context(), req.Content)
	if err != nil {
		switch apperrors.TypeOf(err) {
		case apperrors.ErrorTypeNotConfigured:
			api.Error(w, http.StatusServiceUnavailable, "OpenAI API key is not configured")
		case apperrors.ErrorTypeRateLimit:
			api.Error(w, http.StatusTooManyRequests, "API rate limit exceeded. Please try again later.")
		case apperrors.ErrorTypeTimeout:
			api.Error(w, http.StatusRequestTimeout, "Request timed out. Please try again.")
		default:
			h.logger.Error("Title generation failed", zap.Error(err))
			api.Error(w, http.StatusInternalServerError, "Failed to generate title")
		}
		return
	}

	if title == "" {
		title = ports.DefaultTitle
	}
	api.JSON(w, http.StatusOK, TitleResponse{Success: true, Title: title})
}

// Summary handles POST /api/ai/summary.
func (h *AIHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := api.ParseJSONBody(r, &req, 1<<20); err != nil || req.Content == "" {
		api.Error(w, http.StatusBadRequest, "Content is required")
		return
	}

	summary, err := h.generator.Summary(r.Context(), req.Content)
	if err != nil {
		switch apperrors.TypeOf(err) {
		case apperrors.ErrorTypeNotConfigured:
			api.Error(w, http.StatusServiceUnavailable, "OpenAI API key is not configured")
		case apperrors.ErrorTypeTimeout:
			// The summary contract degrades to marker strings rather
			// than surfacing provider hiccups as failures.
			api.JSON(w, http.StatusOK, SummaryResponse{Success: true, Summary: ports.SummaryTimedOut})
		default:
			h.logger.Error("Summary generation failed", zap.Error(err))
			api.Error(w, http.StatusInternalServerError, "Failed to generate summary")
		}
		return
	}

	if summary == "" {
		summary = ports.SummaryEmptyText
	}
	api.JSON(w, http.StatusOK, SummaryResponse{Success: true, Summary: summary})
}
