package handlers

import (
	"encoding/json"
	"net/http"

	"agentdir/interfaces/http/rest/middleware"
	"agentdir/pkg/auth"
	apperrors "agentdir/pkg/errors"

	"go.uber.org/zap"
)

// AuthHandler handles admin session requests.
type AuthHandler struct {
	gate    *auth.Gate
	limiter *auth.TokenBucketLimiter
	errors  *apperrors.ErrorHandler
	logger  *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(gate *auth.Gate, limiter *auth.TokenBucketLimiter, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		gate:    gate,
		limiter: limiter,
		errors:  errorHandler,
		logger:  logger,
	}
}

// LoginRequest carries the admin secret.
type LoginRequest struct {
	Secret string `json:"secret"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	clientIP := middleware.GetClientIP(r)
	allowed, _ := h.limiter.Allow(r.Context(), clientIP)
	if !allowed {
		h.errors.Handle(w, r, apperrors.NewRateLimitError(10, "minute"))
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	token, err := h.gate.Login(req.Secret)
	if err != nil {
		h.logger.Warn("admin login rejected", zap.String("ip", clientIP))
		h.errors.Handle(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(LoginResponse{Token: token, ExpiresIn: h.gate.ExpirySeconds()}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractToken(r)
	if token == "" {
		h.errors.Handle(w, r, apperrors.NewUnauthorizedError("missing authentication token"))
		return
	}

	h.gate.Logout(token)
	w.WriteHeader(http.StatusNoContent)
}
