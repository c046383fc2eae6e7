package cosmic

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"voicenotes-backend/domain/notes"
	apperrors "voicenotes-backend/pkg/errors"
	"voicenotes-backend/pkg/utils"
)

// Object type slugs of the content model.
const (
	typeNotes        = "notes"
	typeCollections  = "collections"
	typeTags         = "tags"
	typeChatSessions = "chat-sessions"
)

// notesCacheTTL bounds how stale the chat context may get; mutations
// invalidate eagerly.
const notesCacheTTL = 30 * time.Second

// Store is the typed content store over a BucketClient. It implements
// ports.ContentStore.
type Store struct {
	client *BucketClient
	cache  *notesCache
	logger *zap.Logger
}

// NewStore creates a typed store over the bucket client.
func NewStore(client *BucketClient, logger *zap.Logger) *Store {
	return &Store{
		client: client,
		cache:  newNotesCache(notesCacheTTL),
		logger: logger,
	}
}

// GetNotes fetches all notes with resolved collection and tag
// references, newest first.
func (s *Store) GetNotes(ctx context.Context) ([]notes.Note, error) {
	if cached, ok := s.cache.Get(); ok {
		return cached, nil
	}

	raw, err := s.client.FindByType(ctx, typeNotes, nil, 1)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return []notes.Note{}, nil
		}
		return nil, err
	}

	var result []notes.Note
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, apperrors.NewInternalError("malformed notes payload").WithCause(err)
	}

	sortNotesByCreatedDesc(result)
	s.cache.Set(result)
	return result, nil
}

// GetNoteBySlug fetches a single note, or nil when absent.
func (s *Store) GetNoteBySlug(ctx context.Context, slug string) (*notes.Note, error) {
	raw, err := s.client.FindOneBySlug(ctx, typeNotes, slug, 1)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var note notes.Note
	if err := json.Unmarshal(raw, &note); err != nil {
		return nil, apperrors.NewInternalError("malformed note payload").WithCause(err)
	}
	return &note, nil
}

// GetNotesByCollection fetches the notes referencing a collection,
// newest first.
func (s *Store) GetNotesByCollection(ctx context.Context, collectionID string) ([]notes.Note, error) {
	return s.findNotes(ctx, map[string]string{"metadata.collection": collectionID})
}

// GetNotesByTag fetches the notes carrying a tag, newest first.
func (s *Store) GetNotesByTag(ctx context.Context, tagID string) ([]notes.Note, error) {
	return s.findNotes(ctx, map[string]string{"metadata.tags": tagID})
}

func (s *Store) findNotes(ctx context.Context, metaQuery map[string]string) ([]notes.Note, error) {
	raw, err := s.client.FindByType(ctx, typeNotes, metaQuery, 1)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return []notes.Note{}, nil
		}
		return nil, err
	}

	var result []notes.Note
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, apperrors.NewInternalError("malformed notes payload").WithCause(err)
	}
	sortNotesByCreatedDesc(result)
	return result, nil
}

// CreateNote persists a new note. The store mints id and slug.
func (s *Store) CreateNote(ctx context.Context, data notes.CreateNoteData) (*notes.Note, error) {
	priority := data.Priority
	if priority == "" {
		priority = notes.PriorityMedium
	}

	metadata := map[string]interface{}{
		"title":                data.Title,
		"content":              data.Content,
		"transcription_status": data.TranscriptionStatus,
		"summary":              data.Summary,
		"word_count":           data.WordCount,
		"recording_duration":   data.RecordingDuration,
		"priority":             priority,
	}
	if data.CollectionID != "" {
		metadata["collection"] = data.CollectionID
	}
	if len(data.TagIDs) > 0 {
		metadata["tags"] = data.TagIDs
	}

	raw, err := s.client.Insert(ctx, map[string]interface{}{
		"type":     typeNotes,
		"title":    data.Title,
		"metadata": metadata,
	})
	if err != nil {
		return nil, err
	}

	var note notes.Note
	if err := json.Unmarshal(raw, &note); err != nil {
		return nil, apperrors.NewInternalError("malformed note payload").WithCause(err)
	}

	s.cache.Invalidate()
	s.logger.Info("Note created",
		zap.String("id", note.ID),
		zap.String("slug", note.Slug),
		zap.Int("word_count", note.Metadata.WordCount),
	)
	return &note, nil
}

// UpdateNote applies a partial update; unset fields are omitted from
// the payload, never sent as empty overwrites.
func (s *Store) UpdateNote(ctx context.Context, id string, data notes.UpdateNoteData) (*notes.Note, error) {
	metadata := map[string]interface{}{}
	if data.Title != nil {
		metadata["title"] = *data.Title
	}
	if data.Content != nil {
		metadata["content"] = *data.Content
	}
	if data.TranscriptionStatus != nil {
		metadata["transcription_status"] = *data.TranscriptionStatus
	}
	if data.Summary != nil {
		metadata["summary"] = *data.Summary
	}
	if data.WordCount != nil {
		metadata["word_count"] = *data.WordCount
	}
	if data.RecordingDuration != nil {
		metadata["recording_duration"] = *data.RecordingDuration
	}
	if data.Priority != nil {
		metadata["priority"] = *data.Priority
	}
	if data.CollectionID != nil {
		metadata["collection"] = *data.CollectionID
	}
	if data.TagIDs != nil {
		metadata["tags"] = *data.TagIDs
	}

	payload := map[string]interface{}{"metadata": metadata}
	if data.Title != nil {
		payload["title"] = *data.Title
	}

	raw, err := s.client.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	var note notes.Note
	if err := json.Unmarshal(raw, &note); err != nil {
		return nil, apperrors.NewInternalError("malformed note payload").WithCause(err)
	}

	s.cache.Invalidate()
	return &note, nil
}

// DeleteNote removes a note by id.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

// GetCollections fetches all collections.
func (s *Store) GetCollections(ctx context.Context) ([]notes.Collection, error) {
	raw, err := s.client.FindByType(ctx, typeCollections, nil, 0)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return []notes.Collection{}, nil
		}
		return nil, err
	}

	var result []notes.Collection
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, apperrors.NewInternalError("malformed collections payload").WithCause(err)
	}
	return result, nil
}

// GetTags fetches all tags.
func (s *Store) GetTags(ctx context.Context) ([]notes.Tag, error) {
	raw, err := s.client.FindByType(ctx, typeTags, nil, 0)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return []notes.Tag{}, nil
		}
		return nil, err
	}

	var result []notes.Tag
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, apperrors.NewInternalError("malformed tags payload").WithCause(err)
	}
	return result, nil
}

// GetChatSessions fetches all chat sessions, newest first.
func (s *Store) GetChatSessions(ctx context.Context) ([]notes.ChatSession, error) {
	raw, err := s.client.FindByType(ctx, typeChatSessions, nil, 1)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return []notes.ChatSession{}, nil
		}
		return nil, err
	}

	var result []notes.ChatSession
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, apperrors.NewInternalError("malformed chat sessions payload").WithCause(err)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return parseCreatedAt(result[i].CreatedAt).After(parseCreatedAt(result[j].CreatedAt))
	})
	return result, nil
}

// CreateChatSession persists a new chat session with last_activity set
// to today.
func (s *Store) CreateChatSession(ctx context.Context, data notes.CreateChatSessionData) (*notes.ChatSession, error) {
	metadata := map[string]interface{}{
		"session_title":     data.SessionTitle,
		"conversation_data": data.ConversationData,
		"session_summary":   data.SessionSummary,
		"related_notes":     relatedOrEmpty(data.RelatedNotes),
		"last_activity":     utils.TodayDate(),
	}

	raw, err := s.client.Insert(ctx, map[string]interface{}{
		"type":     typeChatSessions,
		"title":    data.SessionTitle,
		"metadata": metadata,
	})
	if err != nil {
		return nil, err
	}

	var session notes.ChatSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, apperrors.NewInternalError("malformed chat session payload").WithCause(err)
	}
	return &session, nil
}

// UpdateChatSession appends to an existing session, refreshing
// last_activity.
func (s *Store) UpdateChatSession(ctx context.Context, id string, data notes.UpdateChatSessionData) (*notes.ChatSession, error) {
	metadata := map[string]interface{}{
		"last_activity": utils.TodayDate(),
	}
	if data.ConversationData != nil {
		metadata["conversation_data"] = *data.ConversationData
	}
	if data.SessionSummary != nil {
		metadata["session_summary"] = *data.SessionSummary
	}
	if data.RelatedNotes != nil {
		metadata["related_notes"] = *data.RelatedNotes
	}

	raw, err := s.client.Update(ctx, id, map[string]interface{}{"metadata": metadata})
	if err != nil {
		return nil, err
	}

	var session notes.ChatSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, apperrors.NewInternalError("malformed chat session payload").WithCause(err)
	}
	return &session, nil
}

func relatedOrEmpty(related []string) []string {
	if related == nil {
		return []string{}
	}
	return related
}

func sortNotesByCreatedDesc(list []notes.Note) {
	sort.SliceStable(list, func(i, j int) bool {
		return parseCreatedAt(list[i].CreatedAt).After(parseCreatedAt(list[j].CreatedAt))
	})
}

func parseCreatedAt(s string) time.Time {
	t, err := utils.ParseRFC3339(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
