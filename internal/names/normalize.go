// Package names canonicalizes currency names so they can be used as lookup keys.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize trims s, strips diacritics and upper-cases the result:
// "  dólar " -> "DOLAR". Empty input is returned unchanged.
//
// Normalize is idempotent: marks are stripped again after case folding and
// whitespace uncovered by stripping is trimmed, so a second pass is a no-op.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = stripMarks(strings.TrimSpace(s))
	s = stripMarks(strings.ToUpper(s))
	return strings.TrimSpace(s)
}

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// stripMarks decomposes s (NFD) and drops every combining mark.
func stripMarks(s string) string {
	// transformers keep state, build a new chain per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.M)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
