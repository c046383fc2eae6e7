package openai

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voicenotes-backend/domain/notes"
	apperrors "voicenotes-backend/pkg/errors"
)

func TestUnconfiguredClient(t *testing.T) {
	c := NewClient(Config{}, zap.NewNop())
	ctx := context.Background()

	assert.False(t, c.Configured())

	_, err := c.Title(ctx, "some transcript")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotConfigured))

	_, err = c.Summary(ctx, "some transcript")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotConfigured))

	_, err = c.ChatReply(ctx, nil, nil, "")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotConfigured))
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Grocery Run", "Grocery Run"},
		{"surrounding whitespace", "  Grocery Run \n", "Grocery Run"},
		{"double quotes stripped", `"Grocery Run"`, "Grocery Run"},
		{"single quotes stripped", "'Grocery Run'", "Grocery Run"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanTitle(tt.in))
		})
	}

	t.Run("capped at the length limit", func(t *testing.T) {
		long := strings.Repeat("a", titleLengthCap+40)
		got := cleanTitle(long)
		assert.Len(t, got, titleLengthCap)
	})

	t.Run("cap never splits a multibyte character", func(t *testing.T) {
		long := strings.Repeat("é", titleLengthCap+40)
		got := cleanTitle(long)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, titleLengthCap, utf8.RuneCountInString(got))
	})
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "héllo", truncateRunes("héllo", 5))
	assert.Equal(t, "日本", truncateRunes("日本語のメモ", 2))
	assert.True(t, utf8.ValidString(truncateRunes(strings.Repeat("語", 400), titleInputLimit)))
}

func TestBuildChatSystemPrompt(t *testing.T) {
	t.Run("embeds every note separated by dividers", func(t *testing.T) {
		all := []notes.Note{
			{Object: notes.Object{Title: "First"}, Metadata: notes.NoteMetadata{Title: "First", Content: "alpha", Summary: "a summary"}},
			{Object: notes.Object{Title: "Second"}, Metadata: notes.NoteMetadata{Title: "Second", Content: "beta"}},
		}

		prompt := buildChatSystemPrompt(all, "User has 2 notes available for reference.")

		assert.Contains(t, prompt, "Title: First\nContent: alpha\nSummary: a summary")
		assert.Contains(t, prompt, "Title: Second")
		assert.Contains(t, prompt, "\n\n---\n\n")
		assert.Contains(t, prompt, "Additional Context: User has 2 notes available for reference.")
	})

	t.Run("empty context gets the placeholder", func(t *testing.T) {
		prompt := buildChatSystemPrompt(nil, "")
		assert.Contains(t, prompt, "No additional context provided.")
	})
}

func TestDefaults(t *testing.T) {
	c := NewClient(Config{APIKey: "test-key"}, zap.NewNop())

	require.True(t, c.Configured())
	assert.NotEmpty(t, c.model)
	assert.Equal(t, "15s", c.titleTimeout.String())
	assert.Equal(t, "30s", c.summaryTimeout.String())
}
