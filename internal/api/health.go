package api

import (
	"net/http"

	"github.com/pgrkam-labs/sahayak/internal/store"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	repo store.Repository
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(repo store.Repository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// Health reports service and datastore status.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		JSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  "datastore unreachable",
		})
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Root returns the service banner.
func Root(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{
		"message": "Sahayak Assistant API",
		"version": "1.0.0",
	})
}
