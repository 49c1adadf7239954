package numerology

import "testing"

func TestLetterValue(t *testing.T) {
	cases := map[rune]int{
		'A': 1, 'J': 1, 'S': 1,
		'B': 2, 'K': 2, 'T': 2,
		'I': 9, 'R': 9,
		'Z': 8,
		'a': 1, 'z': 8,
		'3': 0, ' ': 0, 'é': 0,
	}
	for r, want := range cases {
		if got := LetterValue(r); got != want {
			t.Errorf("LetterValue(%q) = %d, want %d", r, got, want)
		}
	}
}

func TestExpression(t *testing.T) {
	cases := []struct {
		name string
		want int
	}{
		// J=1 O=6 H=8 N=5 -> 20 -> 2
		{"JOHN", 2},
		{"john", 2},
		// normalization runs first, so accents and punctuation are inert
		{"J-O-H-N!", 2},
		// A=1 N=5 N=5 -> 11, master stop
		{"ANN", 11},
		{"", 0},
		{"   ", 0},
		{"123", 0},
	}
	for _, tc := range cases {
		if got := Expression(tc.name); got != tc.want {
			t.Errorf("Expression(%q) = %d, want %d", tc.name, got, tc.want)
		}
	}
}
