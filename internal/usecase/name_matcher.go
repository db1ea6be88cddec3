package usecase

import (
	"regexp"
	"sort"
	"strings"

	"github.com/MarieAhluwalia/nutrimap/internal/domain"
)

// DefaultSuggestionLimit is how many close names a not-found result carries
const DefaultSuggestionLimit = 5

var punctuationRegex = regexp.MustCompile(`[^\w\s]`)

// Scoring weights
const (
	queryCoverageWeight = 0.60 // share of query tokens found in the name
	nameCoverageWeight  = 0.20 // share of name tokens found in the query
	jaccardWeight       = 0.20
	fuzzyWeightFactor   = 0.8 // a fuzzy token match counts 80% of an exact one
	substringBonus      = 10.0
)

// stopWords carry no identity in food names ("beans, in tomato sauce")
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "with": true, "without": true,
	"for": true, "from": true, "to": true, "per": true,
	"kg": true, "ml": true, "oz": true,
}

// MatchConfig holds configuration for the name matcher
type MatchConfig struct {
	MinScore        float64
	MaxEditDistance int
}

// NameMatcher ranks dataset food names by token similarity to a query.
// Exact lookups never go through it; it only proposes alternatives.
type NameMatcher struct {
	minScore        float64
	maxEditDistance int
}

// NewNameMatcher creates a matcher with the given configuration
func NewNameMatcher(config MatchConfig) *NameMatcher {
	minScore := config.MinScore
	if minScore <= 0 {
		minScore = 40.0
	}
	maxDist := config.MaxEditDistance
	if maxDist <= 0 {
		maxDist = 1
	}
	return &NameMatcher{minScore: minScore, maxEditDistance: maxDist}
}

var defaultMatcher = NewNameMatcher(MatchConfig{})

type scoredName struct {
	name  string
	score float64
}

// Closest returns up to limit distinct table names scoring at least the
// matcher's minimum, best first; ties are broken alphabetically.
func (m *NameMatcher) Closest(table *domain.FoodTable, query string, limit int) []string {
	if table == nil || limit <= 0 {
		return nil
	}
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}
	queryLower := strings.ToLower(strings.TrimSpace(query))

	best := make(map[string]scoredName)
	for i := 0; i < table.Len(); i++ {
		name := table.Row(i).FoodItem
		key := strings.ToLower(name)
		if _, seen := best[key]; seen {
			continue
		}
		score := m.score(queryTokens, queryLower, name)
		if score >= m.minScore {
			best[key] = scoredName{name: name, score: score}
		}
	}

	ranked := make([]scoredName, 0, len(best))
	for _, s := range best {
		ranked = append(ranked, s)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name < ranked[j].name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	names := make([]string, len(ranked))
	for i, s := range ranked {
		names[i] = s.name
	}
	return names
}

// score computes a 0-100 similarity between the query and a dataset name
func (m *NameMatcher) score(queryTokens []string, queryLower, name string) float64 {
	nameTokens := tokenize(name)
	if len(nameTokens) == 0 {
		return 0
	}

	matched := m.matchTokens(queryTokens, nameTokens)
	queryCoverage := matched / float64(len(queryTokens))
	nameCoverage := matched / float64(len(nameTokens))
	jaccard := matched / float64(unionSize(queryTokens, nameTokens))

	score := (queryCoverage*queryCoverageWeight + nameCoverage*nameCoverageWeight + jaccard*jaccardWeight) * 100

	nameLower := strings.ToLower(name)
	if len(queryLower) > 3 && (strings.Contains(nameLower, queryLower) || strings.Contains(queryLower, nameLower)) {
		score += substringBonus
	}
	if score > 100 {
		score = 100
	}
	return score
}

// matchTokens counts query tokens found in the name, exact or within edit distance
func (m *NameMatcher) matchTokens(queryTokens, nameTokens []string) float64 {
	names := make(map[string]bool, len(nameTokens))
	for _, t := range nameTokens {
		names[t] = true
	}

	var matched float64
	for _, q := range queryTokens {
		if names[q] {
			matched++
			continue
		}
		for _, n := range nameTokens {
			if fuzzyTokenMatch(q, n, m.maxEditDistance) {
				matched += fuzzyWeightFactor
				break
			}
		}
	}
	return matched
}

// tokenize splits a string into lowercase tokens without punctuation,
// stop words, single characters or pure numbers. Duplicates are dropped.
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	seen := make(map[string]bool)
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 1 || stopWords[word] || isNumeric(word) || seen[word] {
			continue
		}
		seen[word] = true
		tokens = append(tokens, word)
	}
	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fuzzyTokenMatch checks if two tokens are similar within the edit distance threshold.
// Tokens shorter than 4 characters only match exactly.
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}
	if len(token1) < 4 || len(token2) < 4 {
		return false
	}

	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	// Two rows instead of the full matrix
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}

// unionSize returns the count of unique tokens across both sets
func unionSize(tokens1, tokens2 []string) int {
	set := make(map[string]bool, len(tokens1)+len(tokens2))
	for _, t := range tokens1 {
		set[t] = true
	}
	for _, t := range tokens2 {
		set[t] = true
	}
	return len(set)
}
