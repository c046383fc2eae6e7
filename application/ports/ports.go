// Package ports defines the narrow interfaces the application layer
// consumes, so the persistence backend and the language-model provider
// are swappable and mockable.
package ports

import (
	"context"

	"voicenotes-backend/domain/notes"
)

// Fallback values applied when generation degrades. Generation never
// blocks a save or a chat turn; each step falls back to its literal.
const (
	DefaultTitle      = "New Voice Note"
	SummaryFailedText = "Summary generation failed."
	SummaryEmptyText  = "Unable to generate summary."
	SummaryTimedOut   = "Summary generation timed out."
	ChatReplyFallback = "I apologize, but I was unable to generate a response. Please try again."
)

// ContentStore exposes exactly the operations the application performs
// against the external content store.
type ContentStore interface {
	GetNotes(ctx context.Context) ([]notes.Note, error)
	GetNoteBySlug(ctx context.Context, slug string) (*notes.Note, error)
	GetNotesByCollection(ctx context.Context, collectionID string) ([]notes.Note, error)
	GetNotesByTag(ctx context.Context, tagID string) ([]notes.Note, error)
	CreateNote(ctx context.Context, data notes.CreateNoteData) (*notes.Note, error)
	UpdateNote(ctx context.Context, id string, data notes.UpdateNoteData) (*notes.Note, error)
	DeleteNote(ctx context.Context, id string) error

	GetCollections(ctx context.Context) ([]notes.Collection, error)
	GetTags(ctx context.Context) ([]notes.Tag, error)

	GetChatSessions(ctx context.Context) ([]notes.ChatSession, error)
	CreateChatSession(ctx context.Context, data notes.CreateChatSessionData) (*notes.ChatSession, error)
	UpdateChatSession(ctx context.Context, id string, data notes.UpdateChatSessionData) (*notes.ChatSession, error)
}

// Generator issues the three request kinds against the language-model
// provider. Implementations return typed errors; fallback values are
// the caller's responsibility so failure semantics stay testable per
// step.
type Generator interface {
	// Title generates a 2-6 word descriptive title for the content.
	Title(ctx context.Context, content string) (string, error)
	// Summary generates a concise multi-sentence summary.
	Summary(ctx context.Context, content string) (string, error)
	// ChatReply answers the message history grounded in every note
	// plus an optional caller-supplied context string.
	ChatReply(ctx context.Context, messages []notes.ChatMessage, allNotes []notes.Note, extraContext string) (string, error)
}

// AccessVerifier checks a submitted access code against the configured
// secret, failing closed when the secret is unconfigured.
type AccessVerifier interface {
	Verify(code string) bool
}
