// Package chat holds the assistant panel's conversation state for one
// page session. One panel = one continuous session; there is no
// resumption across reloads.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"voicenotes-backend/application/services"
	"voicenotes-backend/domain/notes"
)

// Greeting seeds every new panel.
const Greeting = "Hello! I'm your AI assistant. I can help you find information in your notes, answer questions about your content, or discuss your ideas. What would you like to know?"

// ErrorReply is appended locally when an exchange fails outright.
const ErrorReply = "I apologize, but I encountered an error while processing your request. Please try again."

// Exchanger runs one chat turn. *services.ChatService satisfies it.
type Exchanger interface {
	Exchange(ctx context.Context, messages []notes.ChatMessage, sessionID, extraContext string) (*services.ExchangeResult, error)
}

// Panel maintains the ordered message list and the session id
// established on the first successful exchange.
type Panel struct {
	mu        sync.Mutex
	exchanger Exchanger
	noteCount func() int
	now       func() time.Time

	messages  []notes.ChatMessage
	sessionID string
}

// NewPanel creates a panel seeded with the assistant greeting.
// noteCount reports how many notes are available, for the context line
// sent with every turn.
func NewPanel(exchanger Exchanger, noteCount func() int) *Panel {
	p := &Panel{
		exchanger: exchanger,
		noteCount: noteCount,
		now:       time.Now,
	}
	p.messages = []notes.ChatMessage{{
		Role:      notes.RoleAssistant,
		Content:   Greeting,
		Timestamp: p.now().UTC().Format(time.RFC3339),
	}}
	return p
}

// WithClock replaces the clock, for deterministic tests.
func (p *Panel) WithClock(now func() time.Time) *Panel {
	p.now = now
	return p
}

// Send submits one user message. On success the local history is
// replaced with the server's canonical history (which includes the new
// assistant reply); on failure a literal apology message is appended
// and the error returned. Retry is always a manual user action.
func (p *Panel) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	p.mu.Lock()
	p.messages = append(p.messages, notes.ChatMessage{
		Role:      notes.RoleUser,
		Content:   text,
		Timestamp: p.now().UTC().Format(time.RFC3339),
	})
	history := append([]notes.ChatMessage{}, p.messages...)
	sessionID := p.sessionID
	p.mu.Unlock()

	extraContext := fmt.Sprintf("User has %d notes available for reference.", p.noteCount())

	result, err := p.exchanger.Exchange(ctx, history, sessionID, extraContext)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.messages = append(p.messages, notes.ChatMessage{
			Role:      notes.RoleAssistant,
			Content:   ErrorReply,
			Timestamp: p.now().UTC().Format(time.RFC3339),
		})
		return err
	}

	p.messages = result.Messages
	if p.sessionID == "" {
		p.sessionID = result.SessionID
	}
	return nil
}

// Messages returns a copy of the conversation.
func (p *Panel) Messages() []notes.ChatMessage {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]notes.ChatMessage, len(p.messages))
	copy(out, p.messages)
	return out
}

// SessionID returns the established session id, empty before the
// first successful exchange.
func (p *Panel) SessionID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sessionID
}
