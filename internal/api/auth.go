package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pgrkam-labs/sahayak/internal/identity"
	"github.com/pgrkam-labs/sahayak/internal/store"
)

const (
	minPasswordLen = 6
	resetTokenTTL  = time.Hour
)

// AuthHandler handles registration, login and password management.
type AuthHandler struct {
	*Handler
	ids *identity.Manager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *Handler, ids *identity.Manager) *AuthHandler {
	return &AuthHandler{Handler: base, ids: ids}
}

// RegisterRoutes registers the unauthenticated auth routes.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Post("/reset-password", h.ResetPassword)
}

// RegisterProtectedRoutes registers auth routes that require a bearer token.
func (h *AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/change-password", h.ChangePassword)
}

// Register creates a new user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if email == "" || req.Password == "" {
		Error(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if len(req.Password) < minPasswordLen {
		Error(w, http.StatusBadRequest, "password must be at least 6 characters long")
		return
	}

	hash, err := identity.HashPassword(req.Password)
	if err != nil {
		Fail(w, err)
		return
	}

	userID, err := h.repo.CreateUser(r.Context(), name, email, hash)
	if errors.Is(err, store.ErrEmailTaken) {
		Error(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		slog.Error("failed to register user", "error", err)
		Fail(w, err)
		return
	}

	slog.Info("user registered", "user_id", userID)
	JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "User registered successfully",
		"user_id": userID,
		"name":    name,
	})
}

// Login verifies credentials and issues a bearer token. It accepts the
// OAuth2 password form shape (username = email).
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		Error(w, http.StatusBadRequest, "invalid form body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(r.PostFormValue("username")))
	password := r.PostFormValue("password")

	user, err := h.repo.FindUserByEmail(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		Error(w, http.StatusBadRequest, "Invalid email or password")
		return
	}
	if err != nil {
		Fail(w, err)
		return
	}

	if !identity.CheckPassword(user.Password, password) {
		Error(w, http.StatusBadRequest, "Invalid email or password")
		return
	}

	token, err := h.ids.IssueToken(user.ID.Hex())
	if err != nil {
		slog.Error("failed to issue token", "user_id", user.ID.Hex(), "error", err)
		Fail(w, err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID.Hex())
	JSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"user_id":      user.ID.Hex(),
		"name":         user.Name,
		"access_token": token,
		"token_type":   "bearer",
	})
}

// ForgotPassword stores a reset token. The response never reveals whether
// the email exists. The reset URL is returned directly, which is the
// development behavior; production would email it instead.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		Error(w, http.StatusBadRequest, "Email is required")
		return
	}

	user, err := h.repo.FindUserByEmail(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		JSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "If the email exists, a reset link will be sent",
		})
		return
	}
	if err != nil {
		Fail(w, err)
		return
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := h.repo.SetResetToken(r.Context(), user.ID.Hex(), token, time.Now().UTC().Add(resetTokenTTL)); err != nil {
		Fail(w, err)
		return
	}

	slog.Info("password reset requested", "user_id", user.ID.Hex())
	JSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Password reset link generated",
		"reset_url": "http://localhost:5173/reset-password?token=" + token,
	})
}

// ResetPassword completes a token-based password reset.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token := strings.TrimSpace(req.Token)
	if token == "" || req.Password == "" {
		Error(w, http.StatusBadRequest, "Token and new password are required")
		return
	}

	user, err := h.repo.FindUserByResetToken(r.Context(), token, time.Now().UTC())
	if errors.Is(err, store.ErrNotFound) {
		Error(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}
	if err != nil {
		Fail(w, err)
		return
	}

	hash, err := identity.HashPassword(req.Password)
	if err != nil {
		Fail(w, err)
		return
	}
	if err := h.repo.ResetPassword(r.Context(), user.ID.Hex(), hash); err != nil {
		Fail(w, err)
		return
	}

	slog.Info("password reset completed", "user_id", user.ID.Hex())
	JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password reset successfully",
	})
}

// ChangePassword rotates the password for the authenticated user.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		Error(w, http.StatusBadRequest, "Current password and new password are required")
		return
	}
	if len(req.NewPassword) < minPasswordLen {
		Error(w, http.StatusBadRequest, "New password must be at least 6 characters long")
		return
	}

	user, err := h.repo.GetUser(r.Context(), userID)
	if err != nil {
		Fail(w, err)
		return
	}
	if !identity.CheckPassword(user.Password, req.CurrentPassword) {
		Error(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	hash, err := identity.HashPassword(req.NewPassword)
	if err != nil {
		Fail(w, err)
		return
	}
	if err := h.repo.UpdatePassword(r.Context(), userID, hash); err != nil {
		Fail(w, err)
		return
	}

	slog.Info("password changed", "user_id", userID)
	JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password changed successfully",
	})
}
