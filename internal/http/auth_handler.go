package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/Amansahu83/clothstore-web/internal/backend"
	"github.com/Amansahu83/clothstore-web/internal/session"
)

// AuthAPI is the slice of the backend client the auth handler needs.
type AuthAPI interface {
	Login(ctx context.Context, creds backend.Credentials) (*backend.AuthResponse, error)
	Register(ctx context.Context, reg backend.Registration) (*backend.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, reset backend.PasswordReset) error
}

type AuthHandler struct {
	api      AuthAPI
	sessions *session.Manager
}

func NewAuthHandler(api AuthAPI, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{api: api, sessions: sessions}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds backend.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if creds.Email == "" || creds.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	auth, err := h.api.Login(r.Context(), creds)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	if errSet := h.sessions.SetAuth(r.Context(), auth.Token, auth.User); errSet != nil {
		log.Printf("login: persisting session failed: %v", errSet)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to persist session")
		return
	}
	respondJSON(w, http.StatusOK, auth)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg backend.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if reg.Name == "" || reg.Email == "" || reg.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name, email and password are required")
		return
	}

	auth, err := h.api.Register(r.Context(), reg)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	if errSet := h.sessions.SetAuth(r.Context(), auth.Token, auth.User); errSet != nil {
		log.Printf("register: persisting session failed: %v", errSet)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to persist session")
		return
	}
	respondJSON(w, http.StatusCreated, auth)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.ClearAuth(r.Context()); err != nil {
		log.Printf("logout: clearing session failed: %v", err)
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.sessions.User(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "no active session")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email is required")
		return
	}
	if err := h.api.ForgotPassword(r.Context(), req.Email); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var reset backend.PasswordReset
	if err := json.NewDecoder(r.Body).Decode(&reset); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if reset.Token == "" || reset.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "token and password are required")
		return
	}
	if err := h.api.ResetPassword(r.Context(), reset); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
