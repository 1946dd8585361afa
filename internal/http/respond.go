package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Amansahu83/clothstore-web/internal/backend"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// handleBackendError relays the backend's own status and message when it
// produced one, and reports a bad gateway for transport-level failures.
func handleBackendError(w http.ResponseWriter, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		respondError(w, apiErr.Status, "backend_error", apiErr.Message)
		return
	}
	respondError(w, http.StatusBadGateway, "backend_unavailable", "store backend is unavailable")
}
