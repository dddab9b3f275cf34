// Package language classifies free text into supported language codes by
// Unicode script ranges. No statistical inference is involved.
package language

// Supported language codes.
const (
	Hindi   = "hi"
	Punjabi = "pa"
	English = "en"
)

// Devanagari and Gurmukhi code point ranges.
const (
	devanagariLo = 0x0900
	devanagariHi = 0x097F
	gurmukhiLo   = 0x0A00
	gurmukhiHi   = 0x0A7F
)

// Detect returns the language code for text. Any Devanagari code point
// classifies the whole text as Hindi; otherwise any Gurmukhi code point
// classifies it as Punjabi; everything else is English. The Devanagari
// check runs first, so mixed Devanagari+Gurmukhi text resolves to Hindi.
// Detect is total: it never fails.
func Detect(text string) string {
	for _, r := range text {
		if r >= devanagariLo && r <= devanagariHi {
			return Hindi
		}
	}
	for _, r := range text {
		if r >= gurmukhiLo && r <= gurmukhiHi {
			return Punjabi
		}
	}
	return English
}
