// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/pgrkam-labs/sahayak/internal/domain"
)

var (
	// ErrNotFound indicates the user or session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID indicates a malformed user identifier. It is surfaced
	// before any datastore round trip.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrLostUpdate indicates an append matched no session: the session
	// vanished between resolve and append.
	ErrLostUpdate = errors.New("session update lost")
)

// Repository defines the interface for persisting users and their chat
// sessions. Session mutations are atomic at single-document granularity;
// appends target exactly one session via an array-element filter, never a
// full rewrite of the session array.
type Repository interface {
	// CreateUser inserts a new user with an empty profile and returns its ID.
	CreateUser(ctx context.Context, name, email, passwordHash string) (string, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their normalized email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateProfile partially updates name and/or profile and returns the
	// updated record. Nil fields are left untouched.
	UpdateProfile(ctx context.Context, userID string, name *string, profile domain.Profile) (*domain.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// SetResetToken stores a password reset token with its expiry.
	SetResetToken(ctx context.Context, userID, token string, expires time.Time) error

	// FindUserByResetToken retrieves the user holding an unexpired reset token.
	FindUserByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)

	// ResetPassword replaces the password hash and clears the reset token.
	ResetPassword(ctx context.Context, userID, passwordHash string) error

	// ResolveOrCreateSession returns the session matching requestedID, or
	// creates a new one (fresh identifier, title derived from firstMessage)
	// when requestedID is empty or unknown. The second result reports
	// whether a session was created.
	ResolveOrCreateSession(ctx context.Context, userID, requestedID, firstMessage string) (*domain.ChatSession, bool, error)

	// CreateSession appends a new empty session and returns its identifier.
	CreateSession(ctx context.Context, userID, title string) (string, error)

	// AppendTurn atomically appends both sides of a turn to the matching
	// session and bumps its updated_at. Returns ErrLostUpdate when no
	// session matched.
	AppendTurn(ctx context.Context, userID, sessionID string, userMsg, assistantMsg domain.Message) error

	// ListSessions returns session summaries ordered by updated_at descending.
	ListSessions(ctx context.Context, userID string) ([]domain.SessionSummary, error)

	// GetSession returns the full session or ErrNotFound.
	GetSession(ctx context.Context, userID, sessionID string) (*domain.ChatSession, error)

	// DeleteSession removes the matching session. Returns ErrNotFound when
	// nothing was removed.
	DeleteSession(ctx context.Context, userID, sessionID string) error

	// Ping verifies datastore connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
