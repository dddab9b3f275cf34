package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pgrkam-labs/sahayak/internal/domain"
)

// MemoryStore is an in-memory Repository used by tests and local
// development. It mirrors the Mongo implementation's semantics, including
// identifier validation and lost-update detection.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *MemoryStore {
	return &MemoryStore{users: make(map[string]*domain.User)}
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// CreateUser inserts a new user and returns its generated ID.
func (s *MemoryStore) CreateUser(ctx context.Context, name, email, passwordHash string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return "", ErrEmailTaken
		}
	}

	oid := primitive.NewObjectID()
	s.users[oid.Hex()] = &domain.User{
		ID:        oid,
		Name:      name,
		Email:     email,
		Password:  passwordHash,
		Profile:   domain.Profile{},
		Sessions:  []domain.ChatSession{},
		CreatedAt: time.Now().UTC(),
	}
	return oid.Hex(), nil
}

// GetUser retrieves a user by ID.
func (s *MemoryStore) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(userID)
}

// FindUserByEmail retrieves a user by email.
func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

// FindUserByResetToken retrieves the user holding an unexpired reset token.
func (s *MemoryStore) FindUserByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ResetToken == token && u.ResetTokenExpires.After(now) {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

// UpdateProfile partially updates name and/or profile.
func (s *MemoryStore) UpdateProfile(ctx context.Context, userID string, name *string, profile domain.Profile) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.rawLocked(userID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		u.Name = *name
	}
	if profile != nil {
		u.Profile = profile
	}
	return copyUser(u), nil
}

// UpdatePassword replaces the stored password hash.
func (s *MemoryStore) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.rawLocked(userID)
	if err != nil {
		return err
	}
	u.Password = passwordHash
	return nil
}

// SetResetToken stores a password reset token with its expiry.
func (s *MemoryStore) SetResetToken(ctx context.Context, userID, token string, expires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.rawLocked(userID)
	if err != nil {
		return err
	}
	u.ResetToken = token
	u.ResetTokenExpires = expires
	return nil
}

// ResetPassword replaces the password hash and clears the reset token.
func (s *MemoryStore) ResetPassword(ctx context.Context, userID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.rawLocked(userID)
	if err != nil {
		return err
	}
	u.Password = passwordHash
	u.ResetToken = ""
	u.ResetTokenExpires = time.Time{}
	return nil
}

// ResolveOrCreateSession returns the requested session or creates a new one.
func (s *MemoryStore) ResolveOrCreateSession(ctx context.Context, userID, requestedID, firstMessage string) (*domain.ChatSession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.rawLocked(userID)
	if err != nil {
		return nil, false, err
	}
	if u.Sessions == nil {
		u.Sessions = []domain.ChatSession{}
	}

	if requestedID != "" {
		for i := range u.Sessions {
			if u.Sessions[i].SessionID == requestedID {
				found := copySession(&u.Sessions[i])
				return found, false, nil
			}
		}
	}

	session := domain.ChatSession{
		SessionID: uuid.NewString(),
		Title:     domain.TitleFromMessage(firstMessage),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
		Messages:  []domain.Message{},
	}
	u.Sessions = append(u.Sessions, session)
	return copySession(&session), true, nil
}

// CreateSession appends a new empty session and returns its identifier.
func (s *MemoryStore) CreateSession(ctx context.Context, userID, title string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.rawLocked(userID)
	if err != nil {
		return "", err
	}

	if title == "" {
		title = domain.DefaultTitle
	}
	session := domain.ChatSession{
		SessionID: uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
		Messages:  []domain.Message{},
	}
	u.Sessions = append(u.Sessions, session)
	return session.SessionID, nil
}

// AppendTurn appends both messages to exactly the matching session.
func (s *MemoryStore) AppendTurn(ctx context.Context, userID, sessionID string, userMsg, assistantMsg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.rawLocked(userID)
	if err != nil {
		return err
	}

	for i := range u.Sessions {
		if u.Sessions[i].SessionID == sessionID {
			u.Sessions[i].Messages = append(u.Sessions[i].Messages, userMsg, assistantMsg)
			u.Sessions[i].UpdatedAt = assistantMsg.Timestamp
			return nil
		}
	}
	return ErrLostUpdate
}

// ListSessions returns summaries ordered by updated_at descending.
func (s *MemoryStore) ListSessions(ctx context.Context, userID string) ([]domain.SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.rawLocked(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.SessionSummary, 0, len(u.Sessions))
	for i := range u.Sessions {
		summaries = append(summaries, u.Sessions[i].Summary())
	}
	domain.SortSummaries(summaries)
	return summaries, nil
}

// GetSession returns the full session or ErrNotFound.
func (s *MemoryStore) GetSession(ctx context.Context, userID, sessionID string) (*domain.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.rawLocked(userID)
	if err != nil {
		return nil, err
	}

	for i := range u.Sessions {
		if u.Sessions[i].SessionID == sessionID {
			return copySession(&u.Sessions[i]), nil
		}
	}
	return nil, ErrNotFound
}

// DeleteSession removes the matching session.
func (s *MemoryStore) DeleteSession(ctx context.Context, userID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.rawLocked(userID)
	if err != nil {
		return err
	}

	for i := range u.Sessions {
		if u.Sessions[i].SessionID == sessionID {
			u.Sessions = append(u.Sessions[:i], u.Sessions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) getLocked(userID string) (*domain.User, error) {
	u, err := s.rawLocked(userID)
	if err != nil {
		return nil, err
	}
	return copyUser(u), nil
}

func (s *MemoryStore) rawLocked(userID string) (*domain.User, error) {
	if _, err := primitive.ObjectIDFromHex(userID); err != nil {
		return nil, ErrInvalidID
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func copyUser(u *domain.User) *domain.User {
	out := *u
	out.Profile = make(domain.Profile, len(u.Profile))
	for k, v := range u.Profile {
		out.Profile[k] = v
	}
	out.Sessions = make([]domain.ChatSession, len(u.Sessions))
	for i := range u.Sessions {
		out.Sessions[i] = *copySession(&u.Sessions[i])
	}
	return &out
}

func copySession(sess *domain.ChatSession) *domain.ChatSession {
	out := *sess
	out.Messages = append([]domain.Message(nil), sess.Messages...)
	return &out
}
