package handlers

import (
	"context"

	"voicenotes-backend/application/ports"
	"voicenotes-backend/domain/notes"
)

// fakeStore is an in-memory ContentStore for handler tests.
type fakeStore struct {
	notes    []notes.Note
	notesErr error

	collections []notes.Collection
	tags        []notes.Tag
	sessions    []notes.ChatSession

	createNoteErr error
	deletedID     string
	sessionID     string
}

var _ ports.ContentStore = (*fakeStore)(nil)

func (f *fakeStore) GetNotes(ctx context.Context) ([]notes.Note, error) {
	return f.notes, f.notesErr
}

func (f *fakeStore) GetNoteBySlug(ctx context.Context, slug string) (*notes.Note, error) {
	for i := range f.notes {
		if f.notes[i].Slug == slug {
			return &f.notes[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetNotesByCollection(ctx context.Context, collectionID string) ([]notes.Note, error) {
	var out []notes.Note
	for i := range f.notes {
		if f.notes[i].InCollection(collectionID) {
			out = append(out, f.notes[i])
		}
	}
	return out, nil
}

func (f *fakeStore) GetNotesByTag(ctx context.Context, tagID string) ([]notes.Note, error) {
	var out []notes.Note
	for i := range f.notes {
		if f.notes[i].HasTag(tagID) {
			out = append(out, f.notes[i])
		}
	}
	return out, nil
}

func (f *fakeStore) CreateNote(ctx context.Context, data notes.CreateNoteData) (*notes.Note, error) {
	if f.createNoteErr != nil {
		return nil, f.createNoteErr
	}
	note := notes.Note{
		Object: notes.Object{ID: "minted-id", Slug: "minted-slug", Title: data.Title},
		Metadata: notes.NoteMetadata{
			Title:     data.Title,
			Content:   data.Content,
			WordCount: data.WordCount,
			Priority:  data.Priority,
		},
	}
	f.notes = append(f.notes, note)
	return &note, nil
}

func (f *fakeStore) UpdateNote(ctx context.Context, id string, data notes.UpdateNoteData) (*notes.Note, error) {
	note := notes.Note{Object: notes.Object{ID: id}}
	if data.Title != nil {
		note.Metadata.Title = *data.Title
	}
	return &note, nil
}

func (f *fakeStore) DeleteNote(ctx context.Context, id string) error {
	f.deletedID = id
	return nil
}

func (f *fakeStore) GetCollections(ctx context.Context) ([]notes.Collection, error) {
	return f.collections, nil
}

func (f *fakeStore) GetTags(ctx context.Context) ([]notes.Tag, error) {
	return f.tags, nil
}

func (f *fakeStore) GetChatSessions(ctx context.Context) ([]notes.ChatSession, error) {
	return f.sessions, nil
}

func (f *fakeStore) CreateChatSession(ctx context.Context, data notes.CreateChatSessionData) (*notes.ChatSession, error) {
	return &notes.ChatSession{Object: notes.Object{ID: f.sessionID}}, nil
}

func (f *fakeStore) UpdateChatSession(ctx context.Context, id string, data notes.UpdateChatSessionData) (*notes.ChatSession, error) {
	return &notes.ChatSession{Object: notes.Object{ID: id}}, nil
}

// fakeGenerator returns scripted generation results.
type fakeGenerator struct {
	title      string
	titleErr   error
	summary    string
	summaryErr error
	reply      string
	replyErr   error
}

var _ ports.Generator = (*fakeGenerator)(nil)

func (g *fakeGenerator) Title(ctx context.Context, content string) (string, error) {
	return g.title, g.titleErr
}

func (g *fakeGenerator) Summary(ctx context.Context, content string) (string, error) {
	return g.summary, g.summaryErr
}

func (g *fakeGenerator) ChatReply(ctx context.Context, messages []notes.ChatMessage, allNotes []notes.Note, extraContext string) (string, error) {
	return g.reply, g.replyErr
}
