package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/withbaby/auth-server/internal/logger"
)

// Header names carrying tokens and identities, kept stable for clients.
const (
	TokenHeader = "X-JWT-TOKEN"
	UIDHeader   = "X-UID"
)

// AuthService defines the credential operations exposed over HTTP.
type AuthService interface {
	SignUp(ctx context.Context, username, password string) (string, error)
	SignIn(ctx context.Context, username, password string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	Exists(ctx context.Context, username string) (bool, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

// SignUp registers a new account and responds with its id.
func (h *Auth) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	h.logger.Debug("Auth handler: processing signup request",
		"username", req.Username)

	id, err := h.authService.SignUp(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: signup failed",
			"username", req.Username,
			"error", err.Error())
		writeError(w, err, false)
		return
	}

	h.logger.Info("Auth handler: signup completed",
		"username", req.Username,
		"id", id)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, id)
}

// SignIn exchanges credentials for a bearer token in the X-JWT-TOKEN header.
func (h *Auth) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	h.logger.Debug("Auth handler: processing signin request",
		"username", req.Username)

	token, err := h.authService.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: signin failed",
			"username", req.Username,
			"error", err.Error())
		writeError(w, err, true)
		return
	}

	h.logger.Info("Auth handler: signin completed",
		"username", req.Username)

	w.Header().Set(TokenHeader, token)
	w.WriteHeader(http.StatusOK)
}

// Verify validates the token in X-JWT-TOKEN and responds with the account id
// in X-UID.
func (h *Auth) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(TokenHeader)
	if token == "" {
		http.Error(w, "missing token header", http.StatusBadRequest)
		return
	}

	id, err := h.authService.VerifyToken(r.Context(), token)
	if err != nil {
		h.logger.Info("Auth handler: token verification failed",
			"error", err.Error())
		writeError(w, err, false)
		return
	}

	w.Header().Set(UIDHeader, id)
	w.WriteHeader(http.StatusOK)
}

// Exists responds with a username-availability flag.
func (h *Auth) Exists(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "missing username parameter", http.StatusBadRequest)
		return
	}

	exists, err := h.authService.Exists(r.Context(), username)
	if err != nil {
		h.logger.Error("Auth handler: existence check failed",
			"username", username,
			"error", err.Error())
		writeError(w, err, false)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(existsResponse{Exists: exists}); err != nil {
		h.logger.Error("Auth handler: failed to encode response",
			"error", err.Error())
	}
}
