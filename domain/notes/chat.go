package notes

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is a single turn in a conversation. Timestamp is RFC3339.
type ChatMessage struct {
	Role      ChatRole `json:"role"`
	Content   string   `json:"content"`
	Timestamp string   `json:"timestamp"`
}

// ConversationData wraps the ordered message list the way the content
// model stores it.
type ConversationData struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatSessionMetadata holds the chat session's metafields. LastActivity
// is a date string (YYYY-MM-DD), refreshed on every update.
type ChatSessionMetadata struct {
	SessionTitle     string           `json:"session_title,omitempty"`
	ConversationData ConversationData `json:"conversation_data"`
	SessionSummary   string           `json:"session_summary,omitempty"`
	RelatedNotes     []string         `json:"related_notes,omitempty"`
	LastActivity     string           `json:"last_activity,omitempty"`
}

// ChatSession is a persisted, append-only conversation grounded in the
// user's notes.
type ChatSession struct {
	Object
	Metadata ChatSessionMetadata `json:"metadata"`
}
