// Package chat implements the conversation pipeline: one entry point per
// chat turn, orchestrating session resolution, prompt assembly, the
// completion call and the atomic persistence of both turn sides.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pgrkam-labs/sahayak/internal/domain"
	"github.com/pgrkam-labs/sahayak/internal/language"
	"github.com/pgrkam-labs/sahayak/internal/llm"
	"github.com/pgrkam-labs/sahayak/internal/markdown"
	"github.com/pgrkam-labs/sahayak/internal/prompt"
	"github.com/pgrkam-labs/sahayak/internal/store"
)

// HistoryEntry is a role/content pair supplied by the client. System-role
// entries are dropped at intake; the pipeline alone controls system content.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TurnRequest carries one user turn into the pipeline.
type TurnRequest struct {
	Message   string
	SessionID string
	History   []HistoryEntry
	Language  string
	Profile   domain.Profile
}

// TurnResult is the outcome of a processed turn.
type TurnResult struct {
	Reply     string
	SessionID string
}

// Service orchestrates chat turns. There is no per-session lock by
// default: two concurrent turns on the same session may both read, both
// complete and both append, in non-deterministic order. Callers needing
// strict ordering enable serialization or serialize above this layer.
type Service struct {
	repo      store.Repository
	completer llm.Completer
	now       func() time.Time

	serialize bool
	locks     sync.Map // sessionKey -> *sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithSerializedTurns enables the opt-in per-session turn serialization.
func WithSerializedTurns() Option {
	return func(s *Service) { s.serialize = true }
}

// WithClock overrides the time source (used by tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the pipeline with its injected collaborators.
func NewService(repo store.Repository, completer llm.Completer, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		completer: completer,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleTurn processes one chat turn and returns the formatted reply with
// the resolved session identifier.
//
// A completion failure aborts the turn before anything is persisted. A
// persistence failure after a successful completion (including a lost
// update when the session vanished concurrently) is logged but the reply
// is still returned to the caller.
func (s *Service) HandleTurn(ctx context.Context, userID string, req TurnRequest) (*TurnResult, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	profile := domain.MergeProfiles(user.Profile, req.Profile)
	history := sanitizeHistory(req.History)

	// When serializing, the lock must be held before the session's stored
	// messages are read, or two turns could still interleave their reads.
	if s.serialize && req.SessionID != "" {
		unlock := s.lockSession(userID, req.SessionID)
		defer unlock()
	}

	session, created, err := s.repo.ResolveOrCreateSession(ctx, userID, req.SessionID, req.Message)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	if s.serialize && session.SessionID != req.SessionID {
		unlock := s.lockSession(userID, session.SessionID)
		defer unlock()
	}

	// An existing session's stored messages stand in for the history when
	// the client sent none.
	if !created && len(history) == 0 {
		for _, m := range session.Messages {
			history = append(history, llm.Message{Role: m.Role, Content: m.Content})
		}
	}

	lang := language.Detect(req.Message)
	if isBlank(req.Message) && req.Language != "" {
		lang = req.Language
	}
	slog.Info("processing turn",
		"user_id", userID,
		"session_id", session.SessionID,
		"language", lang,
		"history_len", len(history),
	)

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: domain.RoleSystem, Content: prompt.Build(lang, profile)})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: domain.RoleUser, Content: req.Message})

	raw, err := s.completer.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}
	reply := markdown.Normalize(raw)

	now := s.now().UTC()
	userMsg := domain.Message{Role: domain.RoleUser, Content: req.Message, Timestamp: now}
	assistantMsg := domain.Message{Role: domain.RoleAssistant, Content: reply, Timestamp: now}

	if err := s.repo.AppendTurn(ctx, userID, session.SessionID, userMsg, assistantMsg); err != nil {
		// The reply already exists; losing the write is preferable to
		// failing the whole turn. See ErrLostUpdate.
		slog.Error("failed to persist turn",
			"user_id", userID,
			"session_id", session.SessionID,
			"error", err,
		)
	}

	return &TurnResult{Reply: reply, SessionID: session.SessionID}, nil
}

// sanitizeHistory collapses client history into role/content pairs,
// dropping system-role entries.
func sanitizeHistory(entries []HistoryEntry) []llm.Message {
	var out []llm.Message
	for _, e := range entries {
		if e.Role == domain.RoleSystem {
			continue
		}
		role := e.Role
		if role == "" {
			role = domain.RoleUser
		}
		out = append(out, llm.Message{Role: role, Content: e.Content})
	}
	return out
}

func (s *Service) lockSession(userID, sessionID string) func() {
	key := userID + "/" + sessionID
	lock, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	mu := lock.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
