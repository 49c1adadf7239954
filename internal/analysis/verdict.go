package analysis

import (
	"fmt"

	"github.com/yourusername/sportology/internal/numerology"
)

// TieSentinel is the winner_prediction value when both athletes score
// the same. It is a literal, never either athlete's name.
const TieSentinel = "TIE"

// Confidence tiers derived from the score differential.
const (
	ConfidenceStrong   = "STRONG"
	ConfidenceModerate = "MODERATE"
	ConfidenceLow      = "LOW"
)

// Differential thresholds for the confidence tiers.
const (
	strongThreshold   = 20
	moderateThreshold = 10
)

// PlayerAnalysis is one athlete's slice of the verdict, with the JSON
// shape the API serializes.
type PlayerAnalysis struct {
	Name         string   `json:"name"`
	LifePath     int      `json:"life_path"`
	Expression   int      `json:"expression"`
	PersonalYear int      `json:"personal_year"`
	Score        int      `json:"score"`
	Reasons      []string `json:"reasons"`
}

// MatchVerdict is the full analysis output for one match.
type MatchVerdict struct {
	MatchDate        string         `json:"match_date"`
	Sport            string         `json:"sport"`
	UniversalYear    int            `json:"universal_year"`
	UniversalMonth   int            `json:"universal_month"`
	UniversalDay     int            `json:"universal_day"`
	Player1          PlayerAnalysis `json:"player1"`
	Player2          PlayerAnalysis `json:"player2"`
	WinnerPrediction string         `json:"winner_prediction"`
	Confidence       string         `json:"confidence"`
	ScoreDifference  int            `json:"score_difference"`
	Recommendation   string         `json:"recommendation"`
	BetSize          string         `json:"bet_size"`
	AnalysisSummary  string         `json:"analysis_summary"`
}

// AnalyzeMatch scores both athletes against the match date and derives
// the comparative verdict. The sport string is carried through
// unvalidated; date strings must be YYYY-MM-DD or a wrapped
// numerology.ErrInvalidDate is returned.
func AnalyzeMatch(player1Name, player1Birthdate, player2Name, player2Birthdate, matchDateISO, sport string) (*MatchVerdict, error) {
	matchDate, err := numerology.ParseDate(matchDateISO)
	if err != nil {
		return nil, fmt.Errorf("match date: %w", err)
	}

	p1, err := NewProfile(player1Name, player1Birthdate)
	if err != nil {
		return nil, fmt.Errorf("player1 birthdate: %w", err)
	}
	p2, err := NewProfile(player2Name, player2Birthdate)
	if err != nil {
		return nil, fmt.Errorf("player2 birthdate: %w", err)
	}

	score1 := Score(p1, matchDate)
	score2 := Score(p2, matchDate)
	dn := MatchDateNumbers(matchDate)

	winner := TieSentinel
	winnerScore, loserScore := score1.Score, score2.Score
	switch {
	case score1.Score > score2.Score:
		winner = p1.DisplayName
	case score2.Score > score1.Score:
		winner = p2.DisplayName
		winnerScore, loserScore = score2.Score, score1.Score
	}

	diff := winnerScore - loserScore
	confidence, recommendation, betSize := gradeDifferential(diff, winner)

	return &MatchVerdict{
		MatchDate:      matchDate.String(),
		Sport:          sport,
		UniversalYear:  dn.UniversalYear,
		UniversalMonth: dn.UniversalMonth,
		UniversalDay:   dn.UniversalDay,
		Player1: PlayerAnalysis{
			Name:         p1.DisplayName,
			LifePath:     p1.LifePath,
			Expression:   p1.Expression,
			PersonalYear: numerology.PersonalYear(p1.Birthdate, matchDate.Year),
			Score:        score1.Score,
			Reasons:      score1.Reasons,
		},
		Player2: PlayerAnalysis{
			Name:         p2.DisplayName,
			LifePath:     p2.LifePath,
			Expression:   p2.Expression,
			PersonalYear: numerology.PersonalYear(p2.Birthdate, matchDate.Year),
			Score:        score2.Score,
			Reasons:      score2.Reasons,
		},
		WinnerPrediction: winner,
		Confidence:       confidence,
		ScoreDifference:  diff,
		Recommendation:   recommendation,
		BetSize:          betSize,
		AnalysisSummary: fmt.Sprintf("%s has numerological advantage (%d vs %d) on %s",
			winner, winnerScore, loserScore, matchDate.String()),
	}, nil
}

// gradeDifferential turns the absolute score gap into a confidence tier
// and its fixed recommendation texts. The LOW tier deliberately ignores
// the winner: a gap under 10 is treated as too close to call even when
// one side scored higher.
func gradeDifferential(diff int, winner string) (confidence, recommendation, betSize string) {
	switch {
	case diff >= strongThreshold:
		return ConfidenceStrong, fmt.Sprintf("Strong bet on %s", winner), "3-5% of bankroll"
	case diff >= moderateThreshold:
		return ConfidenceModerate, fmt.Sprintf("Moderate bet on %s", winner), "1-2% of bankroll"
	default:
		return ConfidenceLow, "Avoid / No bet", "Skip this match"
	}
}
