package geo

import (
	"strings"
	"unicode"
)

// Normalize turns a raw place string into its canonical comparison key:
// case-folded, whitespace collapsed, punctuation stripped except the comma
// separating city and region ("New  Orleans ,LA" -> "new orleans, la").
// Idempotent, so keys can be re-normalized safely.
func Normalize(raw string) string {
	parts := strings.Split(raw, ",")
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if k := normalizeSegment(p); k != "" {
			kept = append(kept, k)
		}
	}
	return strings.Join(kept, ", ")
}

func normalizeSegment(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false

	for _, r := range s {
		// Keep letters and digits, collapse everything else to single spaces
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			b.WriteByte(' ')
			prevSpace = true
		}
	}

	return strings.TrimSpace(b.String())
}
