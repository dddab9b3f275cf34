package domain

import (
	"strings"
	"testing"
	"time"
	"unicode"
)

func TestTitleFromMessage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short message kept", "hello", "Hello"},
		{"empty falls back", "", DefaultTitle},
		{"whitespace falls back", "   ", DefaultTitle},
		{"prefix stripped", "Can you list schemes", "List schemes"},
		{"prefix only falls back", "Please", DefaultTitle},
		{"case insensitive prefix", "show me openings", "Openings"},
		{"exactly 35 runes kept", strings.Repeat("a", 35), "A" + strings.Repeat("a", 34)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFromMessage(tt.in); got != tt.want {
				t.Errorf("TitleFromMessage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTitleFromMessageTruncation(t *testing.T) {
	in := "Show me jobs in Ludhiana for diploma holders in mechanical engineering"
	got := TitleFromMessage(in)

	if runeLen := len([]rune(got)); runeLen > 35 {
		t.Errorf("title too long: %d runes (%q)", runeLen, got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("long title should end in ellipsis, got %q", got)
	}
	if strings.HasPrefix(got, "Show me") {
		t.Errorf("lead-in phrase not stripped: %q", got)
	}
	if first := []rune(got)[0]; !unicode.IsUpper(first) {
		t.Errorf("title should start with an uppercase letter, got %q", got)
	}
}

func TestSummaryPreview(t *testing.T) {
	long := strings.Repeat("x", 100)
	sess := ChatSession{
		SessionID: "s1",
		Title:     "Jobs",
		UpdatedAt: time.Now(),
		Messages: []Message{
			{Role: RoleUser, Content: "first question"},
			{Role: RoleAssistant, Content: "answer"},
			{Role: RoleUser, Content: long},
			{Role: RoleAssistant, Content: "second answer"},
		},
	}

	sum := sess.Summary()
	if sum.MessageCount != 4 {
		t.Errorf("Expected message count 4, got %d", sum.MessageCount)
	}
	if sum.Preview == nil {
		t.Fatalf("Expected preview from last user message, got nil")
	}
	if want := long[:80] + "..."; *sum.Preview != want {
		t.Errorf("Expected truncated preview %q, got %q", want, *sum.Preview)
	}
}

func TestSummaryPreviewNilWithoutUserMessage(t *testing.T) {
	sess := ChatSession{
		SessionID: "s1",
		Messages:  []Message{{Role: RoleAssistant, Content: "welcome"}},
	}
	if sum := sess.Summary(); sum.Preview != nil {
		t.Errorf("Expected nil preview, got %q", *sum.Preview)
	}
}

func TestSummaryCreatedAtFallback(t *testing.T) {
	updated := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sess := ChatSession{SessionID: "s1", UpdatedAt: updated}

	if sum := sess.Summary(); !sum.CreatedAt.Equal(updated) {
		t.Errorf("Expected created_at fallback to updated_at, got %v", sum.CreatedAt)
	}
}

func TestSortSummaries(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	summaries := []SessionSummary{
		{SessionID: "old", UpdatedAt: base},
		{SessionID: "newest", UpdatedAt: base.Add(2 * time.Hour)},
		{SessionID: "mid", UpdatedAt: base.Add(time.Hour)},
	}

	SortSummaries(summaries)

	want := []string{"newest", "mid", "old"}
	for i, id := range want {
		if summaries[i].SessionID != id {
			t.Errorf("position %d: expected %q, got %q", i, id, summaries[i].SessionID)
		}
	}
}

func TestMergeProfiles(t *testing.T) {
	stored := Profile{"skills": "Python", "education": "diploma"}
	override := Profile{"skills": "Go", "interest": "IT"}

	merged := MergeProfiles(stored, override)

	if merged["skills"] != "Go" {
		t.Errorf("request profile should win on collision, got %q", merged["skills"])
	}
	if merged["education"] != "diploma" || merged["interest"] != "IT" {
		t.Errorf("merge lost entries: %v", merged)
	}
	if stored["skills"] != "Python" {
		t.Errorf("merge must not mutate the stored profile")
	}
}
