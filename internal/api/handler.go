// Package api provides HTTP handlers for the assistant API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pgrkam-labs/sahayak/internal/llm"
	"github.com/pgrkam-labs/sahayak/internal/store"
)

// maxRequestBodySize caps request bodies at 1MB.
const maxRequestBodySize = 1 << 20

// Handler provides common handler utilities.
type Handler struct {
	repo store.Repository
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(repo store.Repository) *Handler {
	return &Handler{repo: repo}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// decode reads a JSON request body into v, enforcing the body size cap.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	return json.NewDecoder(r.Body).Decode(v)
}

// Fail maps an error onto the response taxonomy: 404 for missing users or
// sessions, 400 for malformed identifiers, 502 for completion-service
// failures (with the category's user-facing message), 500 otherwise.
func Fail(w http.ResponseWriter, err error) {
	var upstream *llm.UpstreamError
	switch {
	case errors.Is(err, store.ErrNotFound):
		Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrInvalidID):
		Error(w, http.StatusBadRequest, "invalid identifier")
	case errors.As(err, &upstream):
		Error(w, http.StatusBadGateway, upstream.Message)
	default:
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
