package cosmic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voicenotes-backend/domain/notes"
	apperrors "voicenotes-backend/pkg/errors"
)

// scriptedTransport replays canned responses and records the requests
// it saw.
type scriptedTransport struct {
	status   int
	body     string
	requests []*http.Request
	bodies   []string
}

func (t *scriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.requests = append(t.requests, req)
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		t.bodies = append(t.bodies, string(raw))
	} else {
		t.bodies = append(t.bodies, "")
	}
	return &http.Response{
		StatusCode: t.status,
		Body:       io.NopCloser(strings.NewReader(t.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func newTestStore(t *testing.T, transport *scriptedTransport) (*Store, *BucketClient) {
	t.Helper()
	client := NewBucketClient(ClientConfig{
		Endpoint:   "https://api.example.test",
		BucketSlug: "test-bucket",
		ReadKey:    "read-key",
		WriteKey:   "write-key",
	}, zap.NewNop())
	client.SetHTTPClient(&http.Client{Transport: transport})
	return NewStore(client, zap.NewNop()), client
}

func TestGetNotes(t *testing.T) {
	ctx := context.Background()

	t.Run("returns notes newest first", func(t *testing.T) {
		transport := &scriptedTransport{status: 200, body: `{"objects":[
			{"id":"a","slug":"old","title":"Old","created_at":"2025-06-01T08:00:00Z","metadata":{"title":"Old","word_count":2}},
			{"id":"b","slug":"new","title":"New","created_at":"2025-06-02T08:00:00Z","metadata":{"title":"New","word_count":5}}
		]}`}
		store, _ := newTestStore(t, transport)

		got, err := store.GetNotes(ctx)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "b", got[0].ID)
		assert.Equal(t, 5, got[0].Metadata.WordCount)

		req := transport.requests[0]
		assert.Contains(t, req.URL.RawQuery, "read_key=read-key")
		assert.Contains(t, req.URL.Query().Get("query"), `"type":"notes"`)
		assert.Equal(t, "1", req.URL.Query().Get("depth"))
	})

	t.Run("404 is an empty list", func(t *testing.T) {
		transport := &scriptedTransport{status: 404, body: `{"message":"No objects found"}`}
		store, _ := newTestStore(t, transport)

		got, err := store.GetNotes(ctx)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("second read within the TTL hits the cache", func(t *testing.T) {
		transport := &scriptedTransport{status: 200, body: `{"objects":[]}`}
		store, _ := newTestStore(t, transport)

		_, err := store.GetNotes(ctx)
		require.NoError(t, err)
		_, err = store.GetNotes(ctx)
		require.NoError(t, err)

		assert.Len(t, transport.requests, 1)
	})
}

func TestCreateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("builds the metafield payload", func(t *testing.T) {
		transport := &scriptedTransport{status: 200, body: `{"object":{"id":"minted","slug":"grocery-run","title":"Grocery Run","metadata":{"title":"Grocery Run","word_count":3}}}`}
		store, _ := newTestStore(t, transport)

		note, err := store.CreateNote(ctx, notes.CreateNoteData{
			Title:               "Grocery Run",
			Content:             "milk eggs bread",
			TranscriptionStatus: notes.StatusCompleted,
			Summary:             "Groceries.",
			WordCount:           3,
			RecordingDuration:   17,
			CollectionID:        "col-1",
			TagIDs:              []string{"tag-1", "tag-2"},
		})

		require.NoError(t, err)
		assert.Equal(t, "minted", note.ID)
		assert.Equal(t, "grocery-run", note.Slug)

		var payload struct {
			Type     string                 `json:"type"`
			Title    string                 `json:"title"`
			Metadata map[string]interface{} `json:"metadata"`
		}
		require.NoError(t, json.Unmarshal([]byte(transport.bodies[0]), &payload))
		assert.Equal(t, "notes", payload.Type)
		assert.Equal(t, "Grocery Run", payload.Title)
		assert.Equal(t, "milk eggs bread", payload.Metadata["content"])
		assert.Equal(t, "Completed", payload.Metadata["transcription_status"])
		assert.Equal(t, float64(17), payload.Metadata["recording_duration"])
		assert.Equal(t, "col-1", payload.Metadata["collection"])
		assert.Equal(t, []interface{}{"tag-1", "tag-2"}, payload.Metadata["tags"])

		req := transport.requests[0]
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "Bearer write-key", req.Header.Get("Authorization"))
	})

	t.Run("defaults priority to Medium and omits empty references", func(t *testing.T) {
		transport := &scriptedTransport{status: 200, body: `{"object":{"id":"minted"}}`}
		store, _ := newTestStore(t, transport)

		_, err := store.CreateNote(ctx, notes.CreateNoteData{
			Title:               "Untagged",
			Content:             "words",
			TranscriptionStatus: notes.StatusCompleted,
		})

		require.NoError(t, err)

		var payload struct {
			Metadata map[string]interface{} `json:"metadata"`
		}
		require.NoError(t, json.Unmarshal([]byte(transport.bodies[0]), &payload))
		assert.Equal(t, "Medium", payload.Metadata["priority"])
		assert.NotContains(t, payload.Metadata, "collection")
		assert.NotContains(t, payload.Metadata, "tags")
	})
}

func TestUpdateNote(t *testing.T) {
	transport := &scriptedTransport{status: 200, body: `{"object":{"id":"n1"}}`}
	store, _ := newTestStore(t, transport)

	title := "Renamed"
	wc := 7
	_, err := store.UpdateNote(context.Background(), "n1", notes.UpdateNoteData{
		Title:     &title,
		WordCount: &wc,
	})

	require.NoError(t, err)

	req := transport.requests[0]
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Contains(t, req.URL.Path, "/objects/n1")

	var payload struct {
		Title    string                 `json:"title"`
		Metadata map[string]interface{} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal([]byte(transport.bodies[0]), &payload))
	assert.Equal(t, "Renamed", payload.Title)
	assert.Equal(t, "Renamed", payload.Metadata["title"])
	assert.Equal(t, float64(7), payload.Metadata["word_count"])
	// Unset fields never reach the wire.
	assert.NotContains(t, payload.Metadata, "content")
	assert.NotContains(t, payload.Metadata, "summary")
}

func TestErrorClassification(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		status   int
		body     string
		wantType apperrors.ErrorType
	}{
		{"unauthorized means misconfigured credentials", 401, `{"message":"bad key"}`, apperrors.ErrorTypeNotConfigured},
		{"forbidden means misconfigured credentials", 403, `{}`, apperrors.ErrorTypeNotConfigured},
		{"429 is rate limited", 429, `{}`, apperrors.ErrorTypeRateLimit},
		{"5xx is unavailable", 502, `{"message":"upstream"}`, apperrors.ErrorTypeUnavailable},
		{"other 4xx is a validation failure", 422, `{"message":"bad metafield"}`, apperrors.ErrorTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &scriptedTransport{status: tt.status, body: tt.body}
			store, _ := newTestStore(t, transport)

			_, err := store.CreateNote(ctx, notes.CreateNoteData{Title: "x", Content: "y", TranscriptionStatus: notes.StatusCompleted})

			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.wantType), "got %v", err)
		})
	}
}

// sequencedTransport replays one scripted response per call, repeating
// the last one once the script runs out.
type sequencedTransport struct {
	statuses []int
	bodies   []string
	calls    int
}

func (t *sequencedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	i := t.calls
	if i >= len(t.statuses) {
		i = len(t.statuses) - 1
	}
	t.calls++
	return &http.Response{
		StatusCode: t.statuses[i],
		Body:       io.NopCloser(strings.NewReader(t.bodies[i])),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func TestValidationFailuresDoNotOpenBreaker(t *testing.T) {
	ctx := context.Background()

	transport := &sequencedTransport{}
	for i := 0; i < 8; i++ {
		transport.statuses = append(transport.statuses, 422)
		transport.bodies = append(transport.bodies, `{"message":"bad metafield"}`)
	}
	transport.statuses = append(transport.statuses, 200)
	transport.bodies = append(transport.bodies, `{"object":{"id":"ok"}}`)

	client := NewBucketClient(ClientConfig{
		Endpoint:   "https://api.example.test",
		BucketSlug: "test-bucket",
		ReadKey:    "read-key",
		WriteKey:   "write-key",
	}, zap.NewNop())
	client.SetHTTPClient(&http.Client{Transport: transport})
	store := NewStore(client, zap.NewNop())

	data := notes.CreateNoteData{Title: "x", Content: "y", TranscriptionStatus: notes.StatusCompleted}

	// Every rejected payload stays a validation error; none of them
	// count against the upstream's health.
	for i := 0; i < 8; i++ {
		_, err := store.CreateNote(ctx, data)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), "attempt %d: %v", i, err)
	}

	_, err := store.CreateNote(ctx, data)
	require.NoError(t, err)
}

func TestMissingCredentials(t *testing.T) {
	client := NewBucketClient(ClientConfig{}, zap.NewNop())
	store := NewStore(client, zap.NewNop())

	_, err := store.GetNotes(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotConfigured))
}

func TestChatSessionPersistence(t *testing.T) {
	ctx := context.Background()

	t.Run("create stamps last_activity and empty related notes", func(t *testing.T) {
		transport := &scriptedTransport{status: 200, body: `{"object":{"id":"cs-1","slug":"chat-1"}}`}
		store, _ := newTestStore(t, transport)

		session, err := store.CreateChatSession(ctx, notes.CreateChatSessionData{
			SessionTitle:     "Chat Session - 6/15/2025",
			ConversationData: notes.ConversationData{Messages: []notes.ChatMessage{{Role: notes.RoleUser, Content: "hi"}}},
			SessionSummary:   "New chat session with 2 messages",
		})

		require.NoError(t, err)
		assert.Equal(t, "cs-1", session.ID)

		var payload struct {
			Type     string                 `json:"type"`
			Metadata map[string]interface{} `json:"metadata"`
		}
		require.NoError(t, json.Unmarshal([]byte(transport.bodies[0]), &payload))
		assert.Equal(t, "chat-sessions", payload.Type)
		assert.Equal(t, []interface{}{}, payload.Metadata["related_notes"])
		assert.NotEmpty(t, payload.Metadata["last_activity"])
	})

	t.Run("update only sends the changed fields", func(t *testing.T) {
		transport := &scriptedTransport{status: 200, body: `{"object":{"id":"cs-1"}}`}
		store, _ := newTestStore(t, transport)

		summary := "Chat session with 4 messages"
		_, err := store.UpdateChatSession(ctx, "cs-1", notes.UpdateChatSessionData{
			SessionSummary: &summary,
		})

		require.NoError(t, err)

		var payload struct {
			Metadata map[string]interface{} `json:"metadata"`
		}
		require.NoError(t, json.Unmarshal([]byte(transport.bodies[0]), &payload))
		assert.Equal(t, summary, payload.Metadata["session_summary"])
		assert.NotContains(t, payload.Metadata, "conversation_data")
		assert.NotContains(t, payload.Metadata, "related_notes")
		assert.NotEmpty(t, payload.Metadata["last_activity"])
	})
}
