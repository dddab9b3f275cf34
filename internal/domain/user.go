// Package domain contains core domain types for the assistant backend.
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is an open mapping of personalization attributes (skills,
// education, gender, interests). Location may be stored here but is never
// used for job matching; the prompt layer enforces that restriction.
type Profile map[string]string

// User represents one account. All of a user's chat sessions live inside
// this single document so that session mutations stay atomic at
// single-document granularity.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"user_id"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Password          string             `bson:"password" json:"-"`
	Profile           Profile            `bson:"profile" json:"profile"`
	Sessions          []ChatSession      `bson:"chat_sessions" json:"-"`
	ResetToken        string             `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExpires time.Time          `bson:"reset_token_expires,omitempty" json:"-"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}

// MergeProfiles overlays request-supplied attributes on top of the stored
// profile. Request fields win on key collision.
func MergeProfiles(stored, override Profile) Profile {
	merged := make(Profile, len(stored)+len(override))
	for k, v := range stored {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
