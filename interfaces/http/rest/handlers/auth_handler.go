package handlers

import (
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"voicenotes-backend/application/access"
	"voicenotes-backend/pkg/api"
	"voicenotes-backend/pkg/auth"
)

// VerifyRequest is the access-code submission body.
type VerifyRequest struct {
	AccessCode string `json:"accessCode"`
}

// VerifyResponse acknowledges a successful verification.
type VerifyResponse struct {
	Success bool `json:"success"`
}

// AuthHandler handles access-gate verification requests.
type AuthHandler struct {
	verifier *access.Verifier
	limiter  auth.RateLimiter
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(verifier *access.Verifier, limiter auth.RateLimiter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		verifier: verifier,
		limiter:  limiter,
		logger:   logger,
	}
}

// Verify handles POST /api/auth/verify.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := api.ParseJSONBody(r, &req, 4096); err != nil {
		api.Error(w, http.StatusBadRequest, "Access code is required")
		return
	}

	code := strings.TrimSpace(req.AccessCode)
	if code == "" {
		api.Error(w, http.StatusBadRequest, "Access code cannot be empty")
		return
	}

	if allowed, _ := h.limiter.Allow(r.Context(), clientIP(r)); !allowed {
		api.Error(w, http.StatusTooManyRequests, "Too many attempts. Please try again later.")
		return
	}

	if !h.verifier.Configured() {
		h.logger.Warn("Access code verification attempted with no secret configured")
		api.Error(w, http.StatusServiceUnavailable, "Access gate is not configured")
		return
	}

	if !h.verifier.Verify(code) {
		api.Error(w, http.StatusUnauthorized, "Invalid access code")
		return
	}

	api.JSON(w, http.StatusOK, VerifyResponse{Success: true})
}

// clientIP prefers the RealIP middleware's rewrite of RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
