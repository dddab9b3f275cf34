package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pgrkam-labs/sahayak/internal/domain"
	"github.com/pgrkam-labs/sahayak/internal/identity"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	*Handler
}

// NewUserHandler creates a new user handler.
func NewUserHandler(base *Handler) *UserHandler {
	return &UserHandler{Handler: base}
}

// RegisterRoutes registers the profile routes.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/user/profile", h.GetProfile)
	r.Put("/user/profile", h.UpdateProfile)
}

// GetProfile returns the authenticated user's profile, never the password.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	user, err := h.repo.GetUser(r.Context(), userID)
	if err != nil {
		Fail(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"user_id":    user.ID.Hex(),
		"name":       user.Name,
		"email":      user.Email,
		"profile":    user.Profile,
		"created_at": user.CreatedAt,
	})
}

// UpdateProfile partially updates the name and/or profile mapping and
// returns the updated record.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var req struct {
		Name    *string        `json:"name"`
		Profile domain.Profile `json:"profile"`
	}
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.repo.UpdateProfile(r.Context(), userID, req.Name, req.Profile)
	if err != nil {
		Fail(w, err)
		return
	}

	slog.Info("profile updated", "user_id", userID)
	JSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    "Profile updated successfully",
		"user_id":    user.ID.Hex(),
		"name":       user.Name,
		"email":      user.Email,
		"profile":    user.Profile,
		"created_at": user.CreatedAt,
	})
}
