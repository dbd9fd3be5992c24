// Package classify implements the closing-reason classification engine: a
// weighted keyword scorer for full transcripts and a first-match cascade for
// pre-summarized text.
package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases text and strips diacritics (NFD decomposition followed
// by removal of combining marks), so "Vácuo" and "vacuo" compare equal. It is
// idempotent and safe for concurrent use.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	// transform.Chain carries internal buffers, so build one per call.
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(stripper, lowered)
	if err != nil {
		return lowered
	}
	return out
}
