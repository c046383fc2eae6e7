// Package services implements the application's use cases over the
// content-store and generator ports.
package services

import (
	"context"

	"go.uber.org/zap"

	"voicenotes-backend/application/ports"
	"voicenotes-backend/domain/notes"
)

// SaveTranscriptRequest carries a finished recording into the note
// lifecycle pipeline.
type SaveTranscriptRequest struct {
	Transcript        string
	RecordingDuration int
	CollectionID      string
	TagIDs            []string
}

// NoteService orchestrates the note lifecycle: generation, composition
// and persistence, plus edits and deletes.
type NoteService struct {
	store     ports.ContentStore
	generator ports.Generator
	logger    *zap.Logger
}

// NewNoteService creates a note service.
func NewNoteService(store ports.ContentStore, generator ports.Generator, logger *zap.Logger) *NoteService {
	return &NoteService{
		store:     store,
		generator: generator,
		logger:    logger,
	}
}

// generationStep is one fallible step of the save pipeline. A failed
// or empty generation degrades to the step's fallback value; it never
// fails the save.
type generationStep struct {
	name     string
	fallback string
	run      func(ctx context.Context) (string, error)
}

func (s *NoteService) runStep(ctx context.Context, step generationStep) string {
	value, err := step.run(ctx)
	if err != nil {
		s.logger.Warn("Generation step degraded to fallback",
			zap.String("step", step.name),
			zap.Error(err),
		)
		return step.fallback
	}
	if value == "" {
		return step.fallback
	}
	return value
}

// CreateFromTranscript runs the sequential pipeline: title, then
// summary, then persistence. Generation failures degrade to fallbacks;
// only the persistence step can fail the save, in which case the
// caller keeps the transcript for a retry without re-recording.
func (s *NoteService) CreateFromTranscript(ctx context.Context, req SaveTranscriptRequest) (*notes.Note, error) {
	title := s.runStep(ctx, generationStep{
		name:     "title",
		fallback: ports.DefaultTitle,
		run: func(ctx context.Context) (string, error) {
			return s.generator.Title(ctx, req.Transcript)
		},
	})

	summary := s.runStep(ctx, generationStep{
		name:     "summary",
		fallback: "",
		run: func(ctx context.Context) (string, error) {
			return s.generator.Summary(ctx, req.Transcript)
		},
	})

	data := notes.CreateNoteData{
		Title:               title,
		Content:             req.Transcript,
		TranscriptionStatus: notes.StatusCompleted,
		CollectionID:        req.CollectionID,
		TagIDs:              req.TagIDs,
		Summary:             summary,
		WordCount:           notes.WordCount(req.Transcript),
		RecordingDuration:   req.RecordingDuration,
		Priority:            notes.PriorityMedium,
	}

	note, err := s.store.CreateNote(ctx, data)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// Create persists an already-composed note payload (the REST create
// endpoint takes the full CreateNoteData).
func (s *NoteService) Create(ctx context.Context, data notes.CreateNoteData) (*notes.Note, error) {
	if data.Priority == "" {
		data.Priority = notes.PriorityMedium
	}
	return s.store.CreateNote(ctx, data)
}

// Update applies a partial update. When the content changed, the word
// count is recomputed from the new content before submitting;
// unchanged fields stay out of the payload.
func (s *NoteService) Update(ctx context.Context, id string, data notes.UpdateNoteData) (*notes.Note, error) {
	if data.Content != nil && data.WordCount == nil {
		wc := notes.WordCount(*data.Content)
		data.WordCount = &wc
	}
	return s.store.UpdateNote(ctx, id, data)
}

// Delete removes a note. On failure the note stays in the caller's
// list; confirmation is the caller's concern.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteNote(ctx, id)
}

// Notes returns all notes, newest first.
func (s *NoteService) Notes(ctx context.Context) ([]notes.Note, error) {
	return s.store.GetNotes(ctx)
}

// NoteBySlug returns one note, or nil when absent.
func (s *NoteService) NoteBySlug(ctx context.Context, slug string) (*notes.Note, error) {
	return s.store.GetNoteBySlug(ctx, slug)
}

// NotesByCollection returns the notes referencing a collection.
func (s *NoteService) NotesByCollection(ctx context.Context, collectionID string) ([]notes.Note, error) {
	return s.store.GetNotesByCollection(ctx, collectionID)
}

// NotesByTag returns the notes carrying a tag.
func (s *NoteService) NotesByTag(ctx context.Context, tagID string) ([]notes.Note, error) {
	return s.store.GetNotesByTag(ctx, tagID)
}

// Collections returns all collections.
func (s *NoteService) Collections(ctx context.Context) ([]notes.Collection, error) {
	return s.store.GetCollections(ctx)
}

// Tags returns all tags.
func (s *NoteService) Tags(ctx context.Context) ([]notes.Tag, error) {
	return s.store.GetTags(ctx)
}
