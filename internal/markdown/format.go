// Package markdown normalizes model replies into the canonical compact
// layout every client renderer assumes: at most one consecutive blank line,
// tight list blocks, one blank line before headings and section headers.
package markdown

import (
	"strings"
	"unicode"
)

var bulletPrefixes = []string{"- ", "* ", "+ ", "• "}

// Normalize rewrites text into the compact layout. It is a single pass over
// the input's lines, tracking whether the previous line was blank and
// whether it was a list item. Normalize is idempotent and total.
func Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	prevWasList := false

	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		stripped := strings.TrimSpace(line)

		if stripped == "" {
			// Collapse runs of blank lines; never lead with one.
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			prevWasList = false
			continue
		}

		switch {
		case isListItem(stripped):
			// One blank line before the first item of a block, none
			// between consecutive items.
			if !prevWasList && len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			out = append(out, line)
			prevWasList = true
		case strings.HasPrefix(stripped, "#"), isBoldHeader(stripped):
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			out = append(out, line)
			prevWasList = false
		default:
			// Separate a finished list block from following prose.
			if prevWasList && len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			out = append(out, line)
			prevWasList = false
		}
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

// isListItem reports whether a trimmed line starts a bullet ("- ", "* ",
// "+ ", "• ") or an ordered item (digit followed by "." or ")").
func isListItem(stripped string) bool {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(stripped, p) {
			return true
		}
	}
	runes := []rune(stripped)
	return len(runes) > 2 && unicode.IsDigit(runes[0]) && (runes[1] == '.' || runes[1] == ')')
}

// isBoldHeader reports whether a trimmed line is wrapped in a bold
// delimiter pair, e.g. a job title used as a section header.
func isBoldHeader(stripped string) bool {
	return len(stripped) >= 4 && strings.HasPrefix(stripped, "**") && strings.HasSuffix(stripped, "**")
}
