package enrich

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Raw ranking exports are whitespace-separated token streams copied
// from ranking pages: a rank number followed by name tokens, with
// ratings, points deltas and round abbreviations interleaved.

var (
	rankToken   = regexp.MustCompile(`^\d+\.?$`)
	bareNumber  = regexp.MustCompile(`^\d+$`)
	hasDigit    = regexp.MustCompile(`\d`)
	roundTokens = map[string]bool{
		"W": true, "R16": true, "R32": true, "QF": true, "SF": true, "F": true, "Q": true,
	}
)

var lowerParticles = map[string]bool{
	"de": true, "del": true, "da": true, "di": true, "van": true, "von": true,
	"der": true, "den": true, "la": true, "le": true, "du": true, "dos": true,
	"das": true, "do": true, "della": true, "mac": true, "mc": true,
}

// countryPhrases are trailing nationality tokens appended to names in
// ITTF exports.
var countryPhrases = map[string]bool{
	"Chinese": true, "Taipei": true, "Hong": true, "Kong,": true, "China": true,
	"Japan": true, "Germany": true, "France": true, "Sweden": true, "Brazil": true,
	"Slovenia": true, "Denmark": true, "Croatia": true, "Egypt": true, "India": true,
	"Nigeria": true, "Australia": true, "Czechia": true, "Romania": true,
	"Belgium": true, "Algeria": true, "England": true, "Portugal": true,
	"Kazakhstan": true, "USA": true, "Poland": true, "Cameroon": true, "Iran": true,
	"Malta": true, "Canada": true, "Benin": true, "Austria": true, "Singapore": true,
	"Wales": true, "Ukraine": true, "Türkiye": true, "Netherlands": true,
	"Thailand": true, "Serbia": true, "Spain": true, "Chile": true, "AIN": true,
}

var countryPhraseList = []string{
	"Hong Kong, China", "Macao, China", "Chinese Taipei", "Korea Republic", "Puerto Rico",
}

// RankedName is one parsed roster row
type RankedName struct {
	Rank int
	Name string
}

// ParseRankedList parses ATP/WTA style exports where each row is
// "<rank>. Last First <rating> ..." and returns at most limit names
// ordered by rank, reordered to "First Last".
func ParseRankedList(raw string, limit int) []RankedName {
	tokens := strings.Fields(raw)
	var names []RankedName

	i := 0
	for i < len(tokens) {
		if !rankToken.MatchString(tokens[i]) {
			i++
			continue
		}
		rank, _ := strconv.Atoi(strings.TrimSuffix(tokens[i], "."))
		i++

		var nameTokens []string
		for i < len(tokens) {
			t := tokens[i]
			if rankToken.MatchString(t) || hasDigit.MatchString(t) || roundTokens[t] {
				break
			}
			nameTokens = append(nameTokens, t)
			i++
		}

		nameTokens = cleanNameTokens(nameTokens)
		if len(nameTokens) > 0 {
			nameTokens = reorderLastFirst(nameTokens)
			names = append(names, RankedName{Rank: rank, Name: strings.Join(normalizeTokens(nameTokens), " ")})
		}
		if len(names) >= limit {
			break
		}
	}

	sortByRank(names)
	if len(names) > limit {
		names = names[:limit]
	}
	return names
}

// ParseITTFList parses ITTF table-tennis exports, where rows carry a
// rank, an optional previous rank, an "avatar" marker, name tokens in
// "SURNAME Given" order, and a trailing country phrase.
func ParseITTFList(raw string, limit int) []RankedName {
	tokens := strings.Fields(raw)
	var names []RankedName

	i := 0
	for i < len(tokens) {
		if !bareNumber.MatchString(tokens[i]) {
			i++
			continue
		}
		rank, _ := strconv.Atoi(tokens[i])
		i++
		if i < len(tokens) && bareNumber.MatchString(tokens[i]) {
			i++ // previous rank column
		}
		if i < len(tokens) && strings.EqualFold(tokens[i], "avatar") {
			i++
		}

		var rowTokens []string
		for i < len(tokens) && !bareNumber.MatchString(tokens[i]) {
			rowTokens = append(rowTokens, tokens[i])
			i++
		}

		nameTokens := stripCountry(cleanNameTokens(rowTokens))
		if len(nameTokens) > 0 {
			if isAllUpper(nameTokens[0]) {
				nameTokens = append(nameTokens[1:], nameTokens[0])
			}
			names = append(names, RankedName{Rank: rank, Name: strings.Join(normalizeTokens(nameTokens), " ")})
		}
		if len(names) >= limit {
			break
		}
	}

	sortByRank(names)
	if len(names) > limit {
		names = names[:limit]
	}
	return names
}

func cleanNameTokens(tokens []string) []string {
	var clean []string
	for _, t := range tokens {
		if strings.EqualFold(t, "avatar") {
			continue
		}
		if hasDigit.MatchString(t) {
			continue
		}
		if strings.HasPrefix(t, "+") || strings.HasPrefix(t, "-") {
			continue
		}
		if strings.HasPrefix(t, "(") && strings.HasSuffix(t, ")") {
			continue
		}
		clean = append(clean, t)
	}
	return clean
}

// normalizeTokens title-cases all-caps surnames and lowercases name
// particles like "van" and "de".
func normalizeTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if isAllUpper(t) {
			t = titleCase(t)
		}
		if lowerParticles[strings.ToLower(t)] {
			t = strings.ToLower(t)
		}
		out = append(out, t)
	}
	return out
}

// reorderLastFirst moves the trailing token to the front:
// "Alcaraz Garfia Carlos" becomes "Carlos Alcaraz Garfia".
func reorderLastFirst(tokens []string) []string {
	if len(tokens) < 2 {
		return tokens
	}
	out := make([]string, 0, len(tokens))
	out = append(out, tokens[len(tokens)-1])
	return append(out, tokens[:len(tokens)-1]...)
}

func stripCountry(tokens []string) []string {
	joined := strings.Join(tokens, " ")
	for _, phrase := range countryPhraseList {
		if joined == phrase {
			return nil
		}
		if strings.HasSuffix(joined, " "+phrase) {
			return strings.Fields(joined[:len(joined)-len(phrase)-1])
		}
	}
	for len(tokens) > 0 && countryPhrases[tokens[len(tokens)-1]] {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

func titleCase(s string) string {
	lower := strings.ToLower(s)
	parts := strings.Split(lower, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "-")
}

func sortByRank(names []RankedName) {
	sort.Slice(names, func(i, j int) bool { return names[i].Rank < names[j].Rank })
}
