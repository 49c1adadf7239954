package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/sportology/internal/numerology"
)

func TestAnalyzeMatchEndToEnd(t *testing.T) {
	verdict, err := AnalyzeMatch("Alice Smith", "1990-01-01", "Bob Jones", "1990-06-15", "2024-07-04", "tennis")
	require.NoError(t, err)

	assert.Equal(t, "2024-07-04", verdict.MatchDate)
	assert.Equal(t, "tennis", verdict.Sport)
	assert.Equal(t, numerology.UniversalYear(2024), verdict.UniversalYear)
	assert.Equal(t, numerology.UniversalMonth(2024, 7), verdict.UniversalMonth)
	assert.Equal(t, numerology.UniversalDay(2024, 7, 4), verdict.UniversalDay)

	// Alice: life path 3, nothing fires against universal year 8.
	assert.Equal(t, "Alice Smith", verdict.Player1.Name)
	assert.Equal(t, 3, verdict.Player1.LifePath)
	assert.Equal(t, 9, verdict.Player1.Expression)
	assert.Equal(t, 1, verdict.Player1.PersonalYear)
	assert.Equal(t, 0, verdict.Player1.Score)
	assert.Empty(t, verdict.Player1.Reasons)

	// Bob: life path 4 and personal year 2 both share the even group
	// with universal year 8.
	assert.Equal(t, "Bob Jones", verdict.Player2.Name)
	assert.Equal(t, 4, verdict.Player2.LifePath)
	assert.Equal(t, 1, verdict.Player2.Expression)
	assert.Equal(t, 2, verdict.Player2.PersonalYear)
	assert.Equal(t, 6, verdict.Player2.Score)
	assert.Len(t, verdict.Player2.Reasons, 2)

	assert.Equal(t, "Bob Jones", verdict.WinnerPrediction)
	assert.Equal(t, 6, verdict.ScoreDifference)
	assert.Equal(t, ConfidenceLow, verdict.Confidence)
	assert.Equal(t, "Avoid / No bet", verdict.Recommendation)
	assert.Equal(t, "Skip this match", verdict.BetSize)
	assert.Equal(t, "Bob Jones has numerological advantage (6 vs 0) on 2024-07-04", verdict.AnalysisSummary)
}

func TestAnalyzeMatchTie(t *testing.T) {
	verdict, err := AnalyzeMatch("Alice Smith", "1990-01-01", "Alicia Smyth", "1990-01-01", "2024-07-04", "boxing")
	require.NoError(t, err)

	require.Equal(t, verdict.Player1.Score, verdict.Player2.Score)
	assert.Equal(t, TieSentinel, verdict.WinnerPrediction)
	assert.Equal(t, 0, verdict.ScoreDifference)
	assert.Equal(t, ConfidenceLow, verdict.Confidence)
	assert.Equal(t, "Avoid / No bet", verdict.Recommendation)
}

func TestAnalyzeMatchPreservesAccentedDisplayNames(t *testing.T) {
	verdict, err := AnalyzeMatch("José Peréz", "1988-04-12", "Jan Vaško", "1992-09-30", "2025-05-05", "table-tennis")
	require.NoError(t, err)

	assert.Equal(t, "José Peréz", verdict.Player1.Name)
	assert.Equal(t, "Jan Vaško", verdict.Player2.Name)
	// The expression number comes from the folded name.
	assert.Equal(t, numerology.Expression("Jose Perez"), verdict.Player1.Expression)
}

func TestAnalyzeMatchRejectsMalformedDates(t *testing.T) {
	cases := []struct{ p1b, p2b, match string }{
		{"1990-01-01", "1990-06-15", "04-07-2024"},
		{"bad", "1990-06-15", "2024-07-04"},
		{"1990-01-01", "1990-13-40", "2024-07-04"},
	}
	for _, tc := range cases {
		_, err := AnalyzeMatch("A", tc.p1b, "B", tc.p2b, tc.match, "tennis")
		if !errors.Is(err, numerology.ErrInvalidDate) {
			t.Errorf("expected ErrInvalidDate for %+v, got %v", tc, err)
		}
	}
}

func TestGradeDifferentialBoundaries(t *testing.T) {
	cases := []struct {
		diff       int
		confidence string
		rec        string
		betSize    string
	}{
		{25, ConfidenceStrong, "Strong bet on Ann", "3-5% of bankroll"},
		{20, ConfidenceStrong, "Strong bet on Ann", "3-5% of bankroll"},
		{19, ConfidenceModerate, "Moderate bet on Ann", "1-2% of bankroll"},
		{10, ConfidenceModerate, "Moderate bet on Ann", "1-2% of bankroll"},
		{9, ConfidenceLow, "Avoid / No bet", "Skip this match"},
		{0, ConfidenceLow, "Avoid / No bet", "Skip this match"},
	}
	for _, tc := range cases {
		confidence, rec, betSize := gradeDifferential(tc.diff, "Ann")
		if confidence != tc.confidence || rec != tc.rec || betSize != tc.betSize {
			t.Errorf("gradeDifferential(%d) = (%s, %q, %q), want (%s, %q, %q)",
				tc.diff, confidence, rec, betSize, tc.confidence, tc.rec, tc.betSize)
		}
	}
}
