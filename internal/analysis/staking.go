package analysis

import "github.com/shopspring/decimal"

// Bankroll percentage bounds per confidence tier, mirroring the
// bet_size hint texts.
var (
	strongMinPct   = decimal.NewFromInt(3)
	strongMaxPct   = decimal.NewFromInt(5)
	moderateMinPct = decimal.NewFromInt(1)
	moderateMaxPct = decimal.NewFromInt(2)
	hundred        = decimal.NewFromInt(100)
)

// StakeSuggestion is a concrete stake range computed from a caller's
// bankroll and the verdict's confidence tier.
type StakeSuggestion struct {
	MinPercent decimal.Decimal `json:"min_percent"`
	MaxPercent decimal.Decimal `json:"max_percent"`
	MinStake   decimal.Decimal `json:"min_stake"`
	MaxStake   decimal.Decimal `json:"max_stake"`
}

// SuggestStake converts the bet_size percentage hint into currency
// amounts for the given bankroll, rounded to cents. It returns false
// for the LOW tier (no bet) and for non-positive bankrolls.
func SuggestStake(bankroll decimal.Decimal, confidence string) (StakeSuggestion, bool) {
	if bankroll.LessThanOrEqual(decimal.Zero) {
		return StakeSuggestion{}, false
	}

	var minPct, maxPct decimal.Decimal
	switch confidence {
	case ConfidenceStrong:
		minPct, maxPct = strongMinPct, strongMaxPct
	case ConfidenceModerate:
		minPct, maxPct = moderateMinPct, moderateMaxPct
	default:
		return StakeSuggestion{}, false
	}

	return StakeSuggestion{
		MinPercent: minPct,
		MaxPercent: maxPct,
		MinStake:   bankroll.Mul(minPct).Div(hundred).Round(2),
		MaxStake:   bankroll.Mul(maxPct).Div(hundred).Round(2),
	}, true
}
