package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voicenotes-backend/application/access"
	"voicenotes-backend/pkg/auth"
)

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(ctx context.Context, key string) (bool, error) { return true, nil }
func (allowAllLimiter) Reset(ctx context.Context, key string) error        { return nil }

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(ctx context.Context, key string) (bool, error) { return false, nil }
func (denyAllLimiter) Reset(ctx context.Context, key string) error         { return nil }

func postVerify(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()
	h.Verify(rec, req)
	return rec
}

func TestVerifyEndpoint(t *testing.T) {
	logger := zap.NewNop()

	t.Run("correct code succeeds", func(t *testing.T) {
		h := NewAuthHandler(access.NewVerifier("open-sesame"), allowAllLimiter{}, logger)

		rec := postVerify(t, h, `{"accessCode":"open-sesame"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp VerifyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("wrong code is unauthorized", func(t *testing.T) {
		h := NewAuthHandler(access.NewVerifier("open-sesame"), allowAllLimiter{}, logger)

		rec := postVerify(t, h, `{"accessCode":"guess"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid access code")
	})

	t.Run("missing body is a bad request", func(t *testing.T) {
		h := NewAuthHandler(access.NewVerifier("open-sesame"), allowAllLimiter{}, logger)

		rec := postVerify(t, h, ``)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("blank code is a bad request", func(t *testing.T) {
		h := NewAuthHandler(access.NewVerifier("open-sesame"), allowAllLimiter{}, logger)

		rec := postVerify(t, h, `{"accessCode":"   "}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unconfigured gate is unavailable", func(t *testing.T) {
		h := NewAuthHandler(access.NewVerifier(""), allowAllLimiter{}, logger)

		rec := postVerify(t, h, `{"accessCode":"anything"}`)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("rate limited attempts are rejected", func(t *testing.T) {
		h := NewAuthHandler(access.NewVerifier("open-sesame"), denyAllLimiter{}, logger)

		rec := postVerify(t, h, `{"accessCode":"open-sesame"}`)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("real limiter exhausts after repeated attempts", func(t *testing.T) {
		limiter := auth.NewTokenBucketLimiter(3, time.Hour)
		h := NewAuthHandler(access.NewVerifier("open-sesame"), limiter, logger)

		for i := 0; i < 3; i++ {
			rec := postVerify(t, h, `{"accessCode":"guess"}`)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		}

		rec := postVerify(t, h, `{"accessCode":"open-sesame"}`)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}
