package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "voicenotes-backend/pkg/errors"
)

func TestErrorFrom(t *testing.T) {
	t.Run("typed errors carry their status and message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ErrorFrom(rec, apperrors.NewRateLimitError("API rate limit exceeded. Please try again later."), "generic")

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "API rate limit exceeded")
		assert.Contains(t, rec.Body.String(), `"success":false`)
	})

	t.Run("wrapped typed errors are still recognized", func(t *testing.T) {
		wrapped := fmt.Errorf("while saving: %w", apperrors.NewNotFoundError("note"))
		rec := httptest.NewRecorder()
		ErrorFrom(rec, wrapped, "generic")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "note not found")
	})

	t.Run("plain errors fall back to the generic 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ErrorFrom(rec, errors.New("raw database detail"), "Failed to fetch notes")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to fetch notes")
		assert.NotContains(t, rec.Body.String(), "raw database detail")
	})

	t.Run("internal typed errors hide their message too", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ErrorFrom(rec, apperrors.NewInternalError("query builder exploded"), "Something went wrong")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "query builder exploded")
	})
}

func TestParseJSONBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("parses a valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))
		var p payload
		require.NoError(t, ParseJSONBody(req, &p, 1024))
		assert.Equal(t, "ok", p.Name)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok","extra":true}`))
		var p payload
		assert.Error(t, ParseJSONBody(req, &p, 1024))
	})

	t.Run("rejects bodies over the limit", func(t *testing.T) {
		big := `{"name":"` + strings.Repeat("x", 2048) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
		var p payload
		assert.Error(t, ParseJSONBody(req, &p, 64))
	})
}
