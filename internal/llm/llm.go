// Package llm defines the completion-service contract and its Groq-backed
// implementation.
package llm

import (
	"context"
	"fmt"
)

// Message is one role-tagged entry of a completion request.
type Message struct {
	Role    string
	Content string
}

// Completer turns an ordered message sequence into a single reply.
// Implementations may fail with *UpstreamError; they never retry.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Category classifies an upstream completion failure.
type Category string

const (
	CategoryRateLimited Category = "rate_limited"
	CategoryTimeout     Category = "timeout"
	CategoryAuth        Category = "auth"
	CategoryUnknown     Category = "unknown"
)

// UpstreamError is a failed call to the completion service, carrying a
// small user-facing message per category.
type UpstreamError struct {
	Category Category
	Message  string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("completion service: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("completion service: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
