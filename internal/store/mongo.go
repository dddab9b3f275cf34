package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pgrkam-labs/sahayak/internal/domain"
)

// MongoStore implements Repository on top of a single users collection.
// Every user is one document; sessions live in its chat_sessions array and
// are mutated in place via array-filtered updates.
type MongoStore struct {
	client *mongo.Client
	users  *mongo.Collection
}

// NewMongo connects to MongoDB and returns a Mongo-backed repository.
func NewMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		users:  client.Database(database).Collection("users"),
	}, nil
}

// Ping verifies datastore connectivity.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// CreateUser inserts a new user with an empty profile and session list.
func (s *MongoStore) CreateUser(ctx context.Context, name, email, passwordHash string) (string, error) {
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Err(); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", fmt.Errorf("check existing email: %w", err)
	}

	doc := bson.M{
		"name":          name,
		"email":         email,
		"password":      passwordHash,
		"profile":       bson.M{},
		"chat_sessions": bson.A{},
		"created_at":    time.Now().UTC(),
	}

	res, err := s.users.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// GetUser retrieves a user by ID.
func (s *MongoStore) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

// FindUserByEmail retrieves a user by their normalized email.
func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// FindUserByResetToken retrieves the user holding an unexpired reset token.
func (s *MongoStore) FindUserByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	return s.findOne(ctx, bson.M{
		"reset_token":         token,
		"reset_token_expires": bson.M{"$gt": now},
	})
}

// UpdateProfile partially updates name and/or profile and returns the
// updated record.
func (s *MongoStore) UpdateProfile(ctx context.Context, userID string, name *string, profile domain.Profile) (*domain.User, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if name != nil {
		set["name"] = *name
	}
	if profile != nil {
		set["profile"] = profile
	}

	if len(set) > 0 {
		if _, err := s.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set}); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	return s.findOne(ctx, bson.M{"_id": oid})
}

// UpdatePassword replaces the stored password hash.
func (s *MongoStore) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	oid, err := parseID(userID)
	if err != nil {
		return err
	}

	res, err := s.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"password": passwordHash}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetResetToken stores a password reset token with its expiry.
func (s *MongoStore) SetResetToken(ctx context.Context, userID, token string, expires time.Time) error {
	oid, err := parseID(userID)
	if err != nil {
		return err
	}

	res, err := s.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"reset_token": token, "reset_token_expires": expires},
	})
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetPassword replaces the password hash and clears the reset token.
func (s *MongoStore) ResetPassword(ctx context.Context, userID, passwordHash string) error {
	oid, err := parseID(userID)
	if err != nil {
		return err
	}

	res, err := s.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set":   bson.M{"password": passwordHash},
		"$unset": bson.M{"reset_token": "", "reset_token_expires": ""},
	})
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ResolveOrCreateSession returns the requested session when it exists,
// otherwise creates a new one with a fresh identifier and a title derived
// from the first message.
func (s *MongoStore) ResolveOrCreateSession(ctx context.Context, userID, requestedID, firstMessage string) (*domain.ChatSession, bool, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, false, err
	}

	user, err := s.findOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, false, err
	}

	// Older records may predate the session array.
	if user.Sessions == nil {
		if _, err := s.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"chat_sessions": bson.A{}}}); err != nil {
			return nil, false, fmt.Errorf("initialize session array: %w", err)
		}
	}

	if requestedID != "" {
		for i := range user.Sessions {
			if user.Sessions[i].SessionID == requestedID {
				found := user.Sessions[i]
				return &found, false, nil
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

	if _, err := s.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"chat_sessions": session}}); err != nil {
		return nil, false, fmt.Errorf("push new session: %w", err)
	}
	return &session, true, nil
}

// CreateSession appends a new empty session and returns its identifier.
func (s *MongoStore) CreateSession(ctx context.Context, userID, title string) (string, error) {
	oid, err := parseID(userID)
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

	res, err := s.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"chat_sessions": session}})
	if err != nil {
		return "", fmt.Errorf("push new session: %w", err)
	}
	if res.MatchedCount == 0 {
		return "", ErrNotFound
	}
	return session.SessionID, nil
}

// AppendTurn pushes both sides of a turn onto exactly the session matching
// sessionID. The mutation is scoped by an array filter so concurrent edits
// to sibling sessions are never clobbered.
func (s *MongoStore) AppendTurn(ctx context.Context, userID, sessionID string, userMsg, assistantMsg domain.Message) error {
	oid, err := parseID(userID)
	if err != nil {
		return err
	}

	update := bson.M{
		"$push": bson.M{
			"chat_sessions.$[s].messages": bson.M{"$each": bson.A{userMsg, assistantMsg}},
		},
		"$set": bson.M{
			"chat_sessions.$[s].updated_at": assistantMsg.Timestamp,
		},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"s.session_id": sessionID}},
	})

	res, err := s.users.UpdateOne(ctx, bson.M{"_id": oid}, update, opts)
	if err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	if res.ModifiedCount == 0 {
		return ErrLostUpdate
	}
	return nil
}

// ListSessions returns session summaries ordered by updated_at descending.
func (s *MongoStore) ListSessions(ctx context.Context, userID string) ([]domain.SessionSummary, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.findOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.SessionSummary, 0, len(user.Sessions))
	for i := range user.Sessions {
		summaries = append(summaries, user.Sessions[i].Summary())
	}
	domain.SortSummaries(summaries)
	return summaries, nil
}

// GetSession returns the full session or ErrNotFound.
func (s *MongoStore) GetSession(ctx context.Context, userID, sessionID string) (*domain.ChatSession, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.findOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}

	for i := range user.Sessions {
		if user.Sessions[i].SessionID == sessionID {
			found := user.Sessions[i]
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteSession pulls the matching session out of the array.
func (s *MongoStore) DeleteSession(ctx context.Context, userID, sessionID string) error {
	oid, err := parseID(userID)
	if err != nil {
		return err
	}

	res, err := s.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$pull": bson.M{"chat_sessions": bson.M{"session_id": sessionID}},
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := s.users.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func parseID(userID string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
