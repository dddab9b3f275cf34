// Package prompt assembles the system prompt sent with every completion
// request. The templates pin the assistant to Punjab employment, training
// and government-scheme content and forbid location-based personalization.
package prompt

import (
	"sort"
	"strings"
	"unicode"

	"github.com/pgrkam-labs/sahayak/internal/domain"
	"github.com/pgrkam-labs/sahayak/internal/language"
)

// profile keys never rendered into the prompt.
var skippedProfileKeys = map[string]bool{
	"_id":      true,
	"id":       true,
	"password": true,
}

// Build returns the system prompt for the given language code, with the
// user's profile rendered as a trailing key/value block. Unknown language
// codes fall back to the English template. Build is pure and total.
func Build(lang string, profile domain.Profile) string {
	var base string
	switch lang {
	case language.Hindi:
		base = hindiPrompt
	case language.Punjabi:
		base = punjabiPrompt
	default:
		base = englishPrompt
	}

	if len(profile) == 0 {
		return base
	}

	keys := make([]string, 0, len(profile))
	for k := range profile {
		if skippedProfileKeys[strings.ToLower(k)] || profile[k] == "" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return base
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n\nUser Profile:\n")
	for _, k := range keys {
		b.WriteString("- ")
		b.WriteString(capitalize(k))
		b.WriteString(": ")
		b.WriteString(profile[k])
		b.WriteString("\n")
	}
	return b.String()
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
