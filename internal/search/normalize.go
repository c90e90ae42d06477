package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minTokenLen is the shortest token kept at index and query time.
const minTokenLen = 2

// NormalizeTerm lowercases s, strips diacritics, replaces every character that
// is neither a word character nor whitespace with a space, and trims the result.
//
// The same function is applied to indexed text and to queries.
func NormalizeTerm(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)

	// Transformers carry state and are not safe for concurrent use.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	s = strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, s)
	return strings.TrimSpace(s)
}

// Tokenize normalizes s and splits it on whitespace, dropping tokens shorter
// than two characters.
func Tokenize(s string) []string {
	fields := strings.Fields(NormalizeTerm(s))
	out := fields[:0]
	for _, f := range fields {
		if len(f) < minTokenLen {
			continue
		}
		out = append(out, f)
	}
	return out
}

// isWordRune reports whether r is an ASCII letter, digit or underscore.
func isWordRune(r rune) bool {
	return r == '_' ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z') ||
		('0' <= r && r <= '9')
}
