package numerology

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// decomposer splits accented letters into base letter plus combining
// marks and drops the marks, so "Peréz" folds to "Perez".
var decomposer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// NormalizeName projects an arbitrary Unicode name onto the ASCII
// alphabet used by the letter chart: diacritics removed, every
// non-letter replaced by a space, whitespace collapsed and trimmed.
// Total over all input; the result is ASCII letters and single spaces,
// or the empty string.
func NormalizeName(raw string) string {
	folded, _, err := transform.String(decomposer, raw)
	if err != nil {
		// runes.Remove never fails; fall back to the raw input so the
		// ASCII filter below still applies.
		folded = raw
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
