package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pgrkam-labs/sahayak/internal/chat"
	"github.com/pgrkam-labs/sahayak/internal/domain"
	"github.com/pgrkam-labs/sahayak/internal/identity"
)

// ChatHandler handles the turn endpoint and session management.
type ChatHandler struct {
	*Handler
	svc *chat.Service
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(base *Handler, svc *chat.Service) *ChatHandler {
	return &ChatHandler{Handler: base, svc: svc}
}

// RegisterRoutes registers chat routes. All of them require a bearer token.
func (h *ChatHandler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.Turn)
	r.Post("/chat/new-session", h.NewSession)
	r.Get("/chat/sessions", h.ListSessions)
	r.Get("/chat/session/{sessionID}", h.GetSession)
	r.Delete("/chat/session/{sessionID}", h.DeleteSession)
}

type turnRequest struct {
	Message     string              `json:"message"`
	SessionID   string              `json:"session_id"`
	History     []chat.HistoryEntry `json:"history"`
	Language    string              `json:"language"`
	UserProfile domain.Profile      `json:"user_profile"`
}

// Turn processes one chat turn.
func (h *ChatHandler) Turn(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var req turnRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		Error(w, http.StatusBadRequest, "message is required")
		return
	}

	result, err := h.svc.HandleTurn(r.Context(), userID, chat.TurnRequest{
		Message:   req.Message,
		SessionID: req.SessionID,
		History:   req.History,
		Language:  req.Language,
		Profile:   req.UserProfile,
	})
	if err != nil {
		slog.Error("turn failed", "user_id", userID, "error", err)
		Fail(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"response":   result.Reply,
		"session_id": result.SessionID,
	})
}

// NewSession creates a new empty chat session.
func (h *ChatHandler) NewSession(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	sessionID, err := h.repo.CreateSession(r.Context(), userID, domain.DefaultTitle)
	if err != nil {
		Fail(w, err)
		return
	}

	slog.Info("session created", "user_id", userID, "session_id", sessionID)
	JSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"session_id": sessionID,
	})
}

// ListSessions returns session summaries, most recently updated first.
func (h *ChatHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	summaries, err := h.repo.ListSessions(r.Context(), userID)
	if err != nil {
		Fail(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"sessions": summaries,
	})
}

// GetSession returns the full message history of one session.
func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.repo.GetSession(r.Context(), userID, sessionID)
	if err != nil {
		Fail(w, err)
		return
	}

	created := session.CreatedAt
	if created.IsZero() {
		created = session.UpdatedAt
	}
	JSON(w, http.StatusOK, map[string]interface{}{
		"session_id": session.SessionID,
		"title":      session.Title,
		"created_at": created,
		"updated_at": session.UpdatedAt,
		"messages":   session.Messages,
	})
}

// DeleteSession removes one session. Deleting an unknown session is a 404,
// so retries of a successful delete report NotFound rather than failing.
func (h *ChatHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.repo.DeleteSession(r.Context(), userID, sessionID); err != nil {
		Fail(w, err)
		return
	}

	slog.Info("session deleted", "user_id", userID, "session_id", sessionID)
	JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Session deleted",
	})
}
