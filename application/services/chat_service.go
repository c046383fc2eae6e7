package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"voicenotes-backend/application/ports"
	"voicenotes-backend/domain/notes"
)

// ExchangeResult is one completed chat turn: the assistant's reply,
// the canonical message history including it, and the session the
// conversation is persisted under.
type ExchangeResult struct {
	Response  string
	Messages  []notes.ChatMessage
	SessionID string
}

// ChatService runs chat turns grounded in the full note list and
// persists the growing conversation as a chat session.
type ChatService struct {
	store     ports.ContentStore
	generator ports.Generator
	logger    *zap.Logger
	now       func() time.Time
}

// NewChatService creates a chat service.
func NewChatService(store ports.ContentStore, generator ports.Generator, logger *zap.Logger) *ChatService {
	return &ChatService{
		store:     store,
		generator: generator,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the clock, for deterministic tests.
func (s *ChatService) WithClock(now func() time.Time) *ChatService {
	s.now = now
	return s
}

// Exchange answers the message history. Generation failures degrade to
// the literal apology reply; only note fetching and session
// persistence can fail the turn. An empty sessionID creates a session;
// a non-empty one updates the same record, never duplicating it.
func (s *ChatService) Exchange(ctx context.Context, messages []notes.ChatMessage, sessionID, extraContext string) (*ExchangeResult, error) {
	allNotes, err := s.store.GetNotes(ctx)
	if err != nil {
		return nil, err
	}

	reply, err := s.generator.ChatReply(ctx, messages, allNotes, extraContext)
	if err != nil {
		s.logger.Warn("Chat reply degraded to fallback", zap.Error(err))
		reply = ports.ChatReplyFallback
	}
	if reply == "" {
		reply = ports.ChatReplyFallback
	}

	now := s.now().UTC()
	updated := append(append([]notes.ChatMessage{}, messages...), notes.ChatMessage{
		Role:      notes.RoleAssistant,
		Content:   reply,
		Timestamp: now.Format(time.RFC3339),
	})
	conversation := notes.ConversationData{Messages: updated}

	var session *notes.ChatSession
	if sessionID == "" {
		summary := fmt.Sprintf("New chat session with %d messages", len(updated))
		session, err = s.store.CreateChatSession(ctx, notes.CreateChatSessionData{
			SessionTitle:     fmt.Sprintf("Chat Session - %s", now.Format("1/2/2006")),
			ConversationData: conversation,
			SessionSummary:   summary,
		})
	} else {
		summary := fmt.Sprintf("Chat session with %d messages", len(updated))
		session, err = s.store.UpdateChatSession(ctx, sessionID, notes.UpdateChatSessionData{
			ConversationData: &conversation,
			SessionSummary:   &summary,
		})
	}
	if err != nil {
		return nil, err
	}

	return &ExchangeResult{
		Response:  reply,
		Messages:  updated,
		SessionID: session.ID,
	}, nil
}

// Sessions returns all persisted chat sessions, newest first.
func (s *ChatService) Sessions(ctx context.Context) ([]notes.ChatSession, error) {
	return s.store.GetChatSessions(ctx)
}
