package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// Authenticator exchanges credentials for a platform bearer token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler forwards admin logins to the platform. The gateway never
// stores credentials or tokens; the browser holds the token and sends
// it back on each admin call.
type AuthHandler struct {
	auth   Authenticator
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth Authenticator, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if req.Username == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "Username and password are required", h.logger)
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Warn("login rejected", "username", req.Username)
		WriteUpstreamError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{AccessToken: token, TokenType: "bearer"}, h.logger)
}
