// Package knowledge loads the skill taxonomy and serves lookups over it:
// exact and alias resolution, nearest-embedding search, and related-skill
// edges. The index is built once and never mutated, so concurrent readers
// need no locking.
package knowledge

import (
	"strings"
	"unicode"
)

// NormalizeTerm canonicalizes a term for lookup: lowercase, punctuation
// stripped to spaces except the characters that carry meaning in skill names
// (+, #, and dots as in c++, c#, .net, node.js), whitespace collapsed.
func NormalizeTerm(term string) string {
	var b strings.Builder
	b.Grow(len(term))

	for _, r := range strings.ToLower(term) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '+' || r == '#' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	out := fields[:0]
	for _, f := range fields {
		// sentence periods drop; the leading dot in .net stays
		f = strings.TrimRight(f, ".")
		if f == "" {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}
