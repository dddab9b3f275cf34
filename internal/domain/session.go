package domain

import (
	"sort"
	"strings"
	"time"
	"unicode"
)

// Message roles. The system role never appears in persisted sessions; the
// pipeline alone controls system content.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

const (
	maxTitleLen   = 35
	titleCutLen   = 32
	maxPreviewLen = 80

	// DefaultTitle is used for sessions created before any user message.
	DefaultTitle = "New Chat"
)

// Message is one side of a conversational turn.
type Message struct {
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// ChatSession is one conversation thread. Messages are append-only and
// always appended in user/assistant pairs.
type ChatSession struct {
	SessionID string    `bson:"session_id" json:"session_id"`
	Title     string    `bson:"title" json:"title"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	Messages  []Message `bson:"messages" json:"messages"`
}

// SessionSummary is the listing view of a session.
type SessionSummary struct {
	SessionID    string    `json:"session_id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Preview      *string   `json:"preview"`
	MessageCount int       `json:"message_count"`
}

// Summary builds the listing view: preview comes from the most recent
// user-role message, created_at falls back to updated_at when absent.
func (s *ChatSession) Summary() SessionSummary {
	created := s.CreatedAt
	if created.IsZero() {
		created = s.UpdatedAt
	}

	var preview *string
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleUser {
			p := truncate(s.Messages[i].Content, maxPreviewLen)
			preview = &p
			break
		}
	}

	return SessionSummary{
		SessionID:    s.SessionID,
		Title:        s.Title,
		CreatedAt:    created,
		UpdatedAt:    s.UpdatedAt,
		Preview:      preview,
		MessageCount: len(s.Messages),
	}
}

// SortSummaries orders summaries by updated_at descending (most recent first).
func SortSummaries(summaries []SessionSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
}

// leadingPhrases are stripped from the first message before it becomes a
// session title.
var leadingPhrases = []string{"Show me", "Help me", "Can you", "I want to", "I need", "Please"}

// TitleFromMessage derives a display title from the first user message:
// conversational lead-ins are stripped, the first letter is capitalized and
// the result is truncated to at most 35 characters.
func TitleFromMessage(message string) string {
	clean := strings.TrimSpace(message)

	for _, phrase := range leadingPhrases {
		if len(clean) >= len(phrase) && strings.EqualFold(clean[:len(phrase)], phrase) {
			clean = strings.TrimSpace(clean[len(phrase):])
		}
	}

	runes := []rune(clean)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	if len(runes) > maxTitleLen {
		return string(runes[:titleCutLen]) + "..."
	}

	if len(runes) == 0 {
		return DefaultTitle
	}
	return string(runes)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
