package main

import (
	"strings"
	"unicode"
)

// NormalizeName canonicalizes a display name for lookup: lowercase, strip
// every rune that is not a Unicode letter, digit or whitespace, collapse
// whitespace runs to a single space, trim. Two names that differ only by
// case, punctuation or whitespace run-length normalize equal. The function
// is idempotent.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
