package constructionlog

import (
	"math"
	"strconv"
	"strings"

	"construction-management-backend/internal/models"
)

// ParsedRow is one spreadsheet row after parsing, before reconciliation.
// Malformed cells are zero-filled by the parser, never rejected.
type ParsedRow struct {
	DetectedPosition   string  `json:"detected_position"`
	Description        string  `json:"description"`
	UnitUploaded       string  `json:"unit_uploaded"`
	UnitPriceUploaded  float64 `json:"unit_price_uploaded"`
	QuantityThisPeriod float64 `json:"quantity_this_period"`
}

// MatchOutcome is the result of resolving one row against the bill. Item is
// set only when Status is matched.
type MatchOutcome struct {
	Status string
	Item   *models.BillItem
}

// PositionMatcher resolves a parsed row to exactly one of matched, unmatched
// or ambiguous. The default is exact ordinal matching; richer heuristics
// (description similarity, fuzzy codes) plug in here.
type PositionMatcher interface {
	Match(row ParsedRow, items []models.BillItem) MatchOutcome
}

// OrdinalMatcher matches the detected position code against bill item
// ordinals rendered as strings. One candidate matches, none is unmatched,
// several is ambiguous.
type OrdinalMatcher struct{}

func (OrdinalMatcher) Match(row ParsedRow, items []models.BillItem) MatchOutcome {
	candidates := ordinalCandidates(row, items)
	switch len(candidates) {
	case 0:
		return MatchOutcome{Status: models.MatchStatusUnmatched}
	case 1:
		return MatchOutcome{Status: models.MatchStatusMatched, Item: candidates[0]}
	default:
		return MatchOutcome{Status: models.MatchStatusAmbiguous}
	}
}

// SimilarityMatcher behaves like OrdinalMatcher but breaks ordinal ties by
// description similarity. A tie resolves to matched only when a single
// candidate clears MinScore and beats the runner-up.
type SimilarityMatcher struct {
	MinScore float64
}

func (m SimilarityMatcher) Match(row ParsedRow, items []models.BillItem) MatchOutcome {
	candidates := ordinalCandidates(row, items)
	switch len(candidates) {
	case 0:
		return MatchOutcome{Status: models.MatchStatusUnmatched}
	case 1:
		return MatchOutcome{Status: models.MatchStatusMatched, Item: candidates[0]}
	}

	minScore := m.MinScore
	if minScore <= 0 {
		minScore = 60
	}

	var best *models.BillItem
	bestScore, secondScore := -1.0, -1.0
	for _, c := range candidates {
		score := descriptionSimilarity(row.Description, c.Description)
		if score > bestScore {
			secondScore = bestScore
			bestScore = score
			best = c
		} else if score > secondScore {
			secondScore = score
		}
	}

	if best != nil && bestScore >= minScore && bestScore > secondScore {
		return MatchOutcome{Status: models.MatchStatusMatched, Item: best}
	}
	return MatchOutcome{Status: models.MatchStatusAmbiguous}
}

func ordinalCandidates(row ParsedRow, items []models.BillItem) []*models.BillItem {
	code := strings.TrimSpace(row.DetectedPosition)
	if code == "" {
		return nil
	}
	var candidates []*models.BillItem
	for i := range items {
		if strconv.Itoa(items[i].Ordinal) == code {
			candidates = append(candidates, &items[i])
		}
	}
	return candidates
}

// descriptionSimilarity scores two descriptions 0..100 by averaging, over
// the bill item's tokens, the best normalized Levenshtein similarity
// against the uploaded tokens.
func descriptionSimilarity(uploaded, canonical string) float64 {
	upTokens := strings.Fields(normalizeText(uploaded))
	canTokens := strings.Fields(normalizeText(canonical))
	if len(canTokens) == 0 {
		return 0
	}

	total := 0.0
	for _, ct := range canTokens {
		best := 0.0
		for _, ut := range upTokens {
			dist := levenshtein(ct, ut)
			maxLen := math.Max(float64(len(ct)), float64(len(ut)))
			if maxLen == 0 {
				continue
			}
			sim := 1 - float64(dist)/maxLen
			if sim > best {
				best = sim
			}
		}
		total += best
	}
	return (total / float64(len(canTokens))) * 100
}

func normalizeText(s string) string {
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.TrimSpace(s)
}

func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
	}
	for i := 0; i <= len(a); i++ {
		dp[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		dp[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			dp[i][j] = minOf(
				dp[i-1][j]+1,
				dp[i][j-1]+1,
				dp[i-1][j-1]+cost,
			)
		}
	}
	return dp[len(a)][len(b)]
}

func minOf(a, b, c int) int {
	if a < b && a < c {
		return a
	}
	if b < c {
		return b
	}
	return c
}
