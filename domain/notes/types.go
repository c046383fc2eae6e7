package notes

// Object is the envelope every record carries in the content store.
// IDs and slugs are minted by the store, never locally.
type Object struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Type       string `json:"type,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
}

// TranscriptionStatus mirrors the select-dropdown values of the content model.
type TranscriptionStatus string

const (
	StatusProcessing TranscriptionStatus = "Processing"
	StatusCompleted  TranscriptionStatus = "Completed"
	StatusFailed     TranscriptionStatus = "Failed"
)

// Priority mirrors the select-dropdown values of the content model.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ColorOption is a select-dropdown color value.
type ColorOption struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NoteMetadata holds the note's content-model metafields.
// Collection and Tags are populated only when the store resolves
// references (depth > 0); otherwise they are nil.
type NoteMetadata struct {
	Title               string              `json:"title,omitempty"`
	Content             string              `json:"content,omitempty"`
	TranscriptionStatus TranscriptionStatus `json:"transcription_status,omitempty"`
	Summary             string              `json:"summary,omitempty"`
	WordCount           int                 `json:"word_count,omitempty"`
	RecordingDuration   int                 `json:"recording_duration,omitempty"`
	Priority            Priority            `json:"priority,omitempty"`
	Collection          *Collection         `json:"collection,omitempty"`
	Tags                []Tag               `json:"tags,omitempty"`
}

// Note is a persisted voice note.
type Note struct {
	Object
	Metadata NoteMetadata `json:"metadata"`
}

// DisplayTitle prefers the metadata title over the object title.
func (n *Note) DisplayTitle() string {
	if n.Metadata.Title != "" {
		return n.Metadata.Title
	}
	return n.Title
}

// CollectionMetadata holds the collection's metafields.
type CollectionMetadata struct {
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       *ColorOption `json:"color,omitempty"`
	IsArchived  bool         `json:"is_archived,omitempty"`
}

// Collection is a single-valued grouping category for notes.
type Collection struct {
	Object
	Metadata CollectionMetadata `json:"metadata"`
}

// TagMetadata holds the tag's metafields.
type TagMetadata struct {
	Name        string       `json:"name,omitempty"`
	Color       *ColorOption `json:"color,omitempty"`
	Description string       `json:"description,omitempty"`
}

// Tag is a multi-valued labeling category for notes.
type Tag struct {
	Object
	Metadata TagMetadata `json:"metadata"`
}

// HasTag reports whether the note carries the given tag id.
func (n *Note) HasTag(tagID string) bool {
	for _, t := range n.Metadata.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// InCollection reports whether the note belongs to the given collection id.
func (n *Note) InCollection(collectionID string) bool {
	return n.Metadata.Collection != nil && n.Metadata.Collection.ID == collectionID
}
