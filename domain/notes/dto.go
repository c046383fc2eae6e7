package notes

// CreateNoteData is the payload for creating a note. Collection and tag
// references are weak (by id); the store resolves them on read.
type CreateNoteData struct {
	Title               string              `json:"title" validate:"required,max=200"`
	Content             string              `json:"content" validate:"required"`
	TranscriptionStatus TranscriptionStatus `json:"transcription_status" validate:"required,oneof=Processing Completed Failed"`
	CollectionID        string              `json:"collection_id,omitempty"`
	TagIDs              []string            `json:"tag_ids,omitempty"`
	Summary             string              `json:"summary,omitempty"`
	WordCount           int                 `json:"word_count,omitempty"`
	RecordingDuration   int                 `json:"recording_duration,omitempty"`
	Priority            Priority            `json:"priority,omitempty" validate:"omitempty,oneof=High Medium Low"`
}

// UpdateNoteData is a partial update: nil fields are left untouched by
// the store, never sent as empty overwrites.
type UpdateNoteData struct {
	Title               *string              `json:"title,omitempty" validate:"omitempty,max=200"`
	Content             *string              `json:"content,omitempty"`
	TranscriptionStatus *TranscriptionStatus `json:"transcription_status,omitempty" validate:"omitempty,oneof=Processing Completed Failed"`
	CollectionID        *string              `json:"collection_id,omitempty"`
	TagIDs              *[]string            `json:"tag_ids,omitempty"`
	Summary             *string              `json:"summary,omitempty"`
	WordCount           *int                 `json:"word_count,omitempty"`
	RecordingDuration   *int                 `json:"recording_duration,omitempty"`
	Priority            *Priority            `json:"priority,omitempty" validate:"omitempty,oneof=High Medium Low"`
}

// CreateChatSessionData is the payload for creating a chat session.
type CreateChatSessionData struct {
	SessionTitle     string           `json:"session_title"`
	ConversationData ConversationData `json:"conversation_data"`
	SessionSummary   string           `json:"session_summary,omitempty"`
	RelatedNotes     []string         `json:"related_notes,omitempty"`
}

// UpdateChatSessionData is a partial update for a chat session.
type UpdateChatSessionData struct {
	ConversationData *ConversationData `json:"conversation_data,omitempty"`
	SessionSummary   *string           `json:"session_summary,omitempty"`
	RelatedNotes     *[]string         `json:"related_notes,omitempty"`
}
