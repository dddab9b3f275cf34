package prompt

import (
	"strings"
	"testing"

	"github.com/pgrkam-labs/sahayak/internal/domain"
	"github.com/pgrkam-labs/sahayak/internal/language"
)

func TestBuildSelectsTemplate(t *testing.T) {
	tests := []struct {
		name   string
		lang   string
		marker string
	}{
		{"english", language.English, "You are the official PGRKAM AI Assistant."},
		{"hindi", language.Hindi, "तुम आधिकारिक PGRKAM AI सहायक हो।"},
		{"punjabi", language.Punjabi, "ਤੂੰ ਅਧਿਕਾਰਤ PGRKAM AI ਸਹਾਇਕ ਹੈਂ।"},
		{"unknown falls back to english", "fr", "You are the official PGRKAM AI Assistant."},
		{"empty falls back to english", "", "You are the official PGRKAM AI Assistant."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.lang, nil)
			if !strings.Contains(got, tt.marker) {
				t.Errorf("Build(%q) missing template marker %q", tt.lang, tt.marker)
			}
		})
	}
}

// The deny-list clause is static: it must survive any profile content,
// including an attempt to smuggle in a location.
func TestBuildKeepsLocationDenyClause(t *testing.T) {
	profile := domain.Profile{
		"location": "Bangalore",
		"skills":   "Python",
	}

	got := Build(language.English, profile)
	if !strings.Contains(got, "Use user location for job matching") {
		t.Errorf("prompt lost the location deny clause: %q", got)
	}
	if !strings.Contains(got, "- Location: Bangalore") {
		t.Errorf("profile block missing rendered location entry")
	}
}

func TestBuildProfileRendering(t *testing.T) {
	profile := domain.Profile{
		"skills":    "Python, communication",
		"education": "diploma",
		"_id":       "abc123",
		"password":  "secret",
		"gender":    "",
	}

	got := Build(language.English, profile)

	if !strings.Contains(got, "User Profile:") {
		t.Fatalf("profile block missing")
	}
	if !strings.Contains(got, "- Skills: Python, communication") {
		t.Errorf("skills entry missing or not capitalized: %q", got)
	}
	if !strings.Contains(got, "- Education: diploma") {
		t.Errorf("education entry missing")
	}
	if strings.Contains(got, "abc123") || strings.Contains(got, "secret") {
		t.Errorf("internal identifier or credential leaked into prompt")
	}
	if strings.Contains(got, "Gender") {
		t.Errorf("empty profile values should be skipped")
	}
}

func TestBuildEmptyProfileOmitsBlock(t *testing.T) {
	for _, profile := range []domain.Profile{nil, {}, {"password": "x"}} {
		got := Build(language.English, profile)
		if strings.Contains(got, "User Profile:") {
			t.Errorf("unexpected profile block for %v", profile)
		}
	}
}
