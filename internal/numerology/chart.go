package numerology

// pythagoreanChart maps A..Z to their numerology values. Indexed by
// letter offset from 'A'; values repeat 1..9 with the tail I,R=9 row.
var pythagoreanChart = [26]int{
	1, 2, 3, 4, 5, 6, 7, 8, 9, // A-I
	1, 2, 3, 4, 5, 6, 7, 8, 9, // J-R
	1, 2, 3, 4, 5, 6, 7, 8, // S-Z
}

// LetterValue returns the chart value for an ASCII letter, or 0 for
// any other rune.
func LetterValue(r rune) int {
	switch {
	case r >= 'A' && r <= 'Z':
		return pythagoreanChart[r-'A']
	case r >= 'a' && r <= 'z':
		return pythagoreanChart[r-'a']
	default:
		return 0
	}
}

// Expression computes the name (expression) number: each letter mapped
// through the Pythagorean chart, summed, then reduced with the
// master-number stop. The name is normalized first, so accents and
// punctuation never contribute. An empty name yields 0.
func Expression(name string) int {
	total := 0
	for _, r := range NormalizeName(name) {
		total += LetterValue(r)
	}
	return Reduce(total)
}
