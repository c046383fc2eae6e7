package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"voicenotes-backend/application/services"
	"voicenotes-backend/domain/notes"
	"voicenotes-backend/pkg/api"
)

// ChatRequest carries one chat turn: the full message history, the
// session to persist under (empty on the first turn) and an optional
// context string prepended to the system prompt.
type ChatRequest struct {
	Messages  []notes.ChatMessage `json:"messages"`
	SessionID string              `json:"sessionId,omitempty"`
	Context   string              `json:"context,omitempty"`
}

// ChatResponse is one completed turn.
type ChatResponse struct {
	Success   bool                `json:"success"`
	Response  string              `json:"response"`
	Messages  []notes.ChatMessage `json:"messages"`
	SessionID string              `json:"sessionId"`
}

// ChatHandler handles assistant chat turns.
type ChatHandler struct {
	chat   *services.ChatService
	logger *zap.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chat *services.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chat:   chat,
		logger: logger,
	}
}

// Exchange handles POST /api/chat.
func (h *ChatHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := api.ParseJSONBody(r, &req, 1<<20); err != nil {
		api.Error(w, http.StatusBadRequest, "Messages are required")
		return
	}
	if len(req.Messages) == 0 {
		api.Error(w, http.StatusBadRequest, "Messages cannot be empty")
		return
	}

	result, err := h.chat.Exchange(r.Context(), req.Messages, req.SessionID, req.Context)
	if err != nil {
		h.logger.Error("Chat exchange failed", zap.Error(err))
		api.ErrorFrom(w, err, "Failed to process chat message")
		return
	}

	api.JSON(w, http.StatusOK, ChatResponse{
		Success:   true,
		Response:  result.Response,
		Messages:  result.Messages,
		SessionID: result.SessionID,
	})
}

// Sessions handles GET /api/chat-sessions.
func (h *ChatHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.chat.Sessions(r.Context())
	if err != nil {
		h.logger.Error("Listing chat sessions failed", zap.Error(err))
		api.ErrorFrom(w, err, "Failed to fetch chat sessions")
		return
	}
	api.JSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"sessions": sessions,
	})
}
