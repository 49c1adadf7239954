// Package analysis combines two athlete profiles and a match date into
// a weighted numerology score and a betting verdict.
package analysis

import (
	"strings"

	"github.com/yourusername/sportology/internal/numerology"
)

// Profile holds the per-athlete numbers derived once from name and
// birthdate. DisplayName keeps the caller's spelling (accents intact);
// CalcName is the ASCII projection the letter chart operates on.
type Profile struct {
	DisplayName string
	CalcName    string
	Birthdate   numerology.Date
	LifePath    int
	Expression  int
}

// NewProfile builds a profile from a raw name and a YYYY-MM-DD
// birthdate. The name is preserved verbatim (trimmed) for display and
// normalized separately for the expression number.
func NewProfile(name, birthdateISO string) (Profile, error) {
	birth, err := numerology.ParseDate(birthdateISO)
	if err != nil {
		return Profile{}, err
	}

	display := strings.TrimSpace(name)
	return Profile{
		DisplayName: display,
		CalcName:    numerology.NormalizeName(display),
		Birthdate:   birth,
		LifePath:    numerology.LifePath(birth),
		Expression:  numerology.Expression(display),
	}, nil
}
