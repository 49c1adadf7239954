package analysis

import (
	"fmt"

	"github.com/yourusername/sportology/internal/numerology"
)

// Rule weights, in evaluation order.
const (
	weightLifePathMatch     = 10
	weightPersonalYearMatch = 10
	weightPersonalDayMatch  = 5
	weightExpressionMatch   = 5
	weightHarmonyBonus      = 3
)

// ScoreResult is one athlete's score for one match date, with a reason
// per rule that fired, in rule order.
type ScoreResult struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// DateNumbers are the universal cycles of a match date, shared by both
// athletes in an analysis.
type DateNumbers struct {
	UniversalYear  int
	UniversalMonth int
	UniversalDay   int
}

// MatchDateNumbers computes the universal cycles for a match date.
func MatchDateNumbers(d numerology.Date) DateNumbers {
	return DateNumbers{
		UniversalYear:  numerology.UniversalYear(d.Year),
		UniversalMonth: numerology.UniversalMonth(d.Year, d.Month),
		UniversalDay:   numerology.UniversalDay(d.Year, d.Month, d.Day),
	}
}

// compatible reports whether both numbers fall in the same harmonious
// group: {1,3,5,7,9} or {2,4,6,8}. Master numbers belong to neither
// group, so they never earn the harmony bonus.
func compatible(n1, n2 int) bool {
	inGroup := func(n int) (odd, even bool) {
		if n >= 1 && n <= 9 {
			if n%2 == 1 {
				return true, false
			}
			return false, true
		}
		return false, false
	}
	odd1, even1 := inGroup(n1)
	odd2, even2 := inGroup(n2)
	return (odd1 && odd2) || (even1 && even2)
}

// Score evaluates the six scoring rules for one athlete on a match
// date. Rules are checked in fixed order and each adds its weight and a
// reason when it fires; the harmony bonuses (rules 5 and 6) stack with
// the exact-match rules for the same pair of numbers.
func Score(p Profile, matchDate numerology.Date) ScoreResult {
	dn := MatchDateNumbers(matchDate)
	py := numerology.PersonalYear(p.Birthdate, matchDate.Year)
	pd := numerology.PersonalDay(p.Birthdate, matchDate)

	result := ScoreResult{Reasons: []string{}}

	if p.LifePath == dn.UniversalYear {
		result.Score += weightLifePathMatch
		result.Reasons = append(result.Reasons, fmt.Sprintf(
			"Life Path %d matches Universal Year %d (+%d)", p.LifePath, dn.UniversalYear, weightLifePathMatch))
	}

	if py == dn.UniversalYear {
		result.Score += weightPersonalYearMatch
		result.Reasons = append(result.Reasons, fmt.Sprintf(
			"Personal Year %d matches Universal Year %d (+%d)", py, dn.UniversalYear, weightPersonalYearMatch))
	}

	if pd == dn.UniversalDay {
		result.Score += weightPersonalDayMatch
		result.Reasons = append(result.Reasons, fmt.Sprintf(
			"Personal Day %d matches Universal Day %d (+%d)", pd, dn.UniversalDay, weightPersonalDayMatch))
	}

	if p.Expression == dn.UniversalMonth {
		result.Score += weightExpressionMatch
		result.Reasons = append(result.Reasons, fmt.Sprintf(
			"Expression %d matches Universal Month %d (+%d)", p.Expression, dn.UniversalMonth, weightExpressionMatch))
	}

	if compatible(p.LifePath, dn.UniversalYear) {
		result.Score += weightHarmonyBonus
		result.Reasons = append(result.Reasons, fmt.Sprintf(
			"Life Path %d harmonizes with Universal Year %d (+%d)", p.LifePath, dn.UniversalYear, weightHarmonyBonus))
	}

	if compatible(py, dn.UniversalYear) {
		result.Score += weightHarmonyBonus
		result.Reasons = append(result.Reasons, fmt.Sprintf(
			"Personal Year %d harmonizes with Universal Year %d (+%d)", py, dn.UniversalYear, weightHarmonyBonus))
	}

	return result
}
