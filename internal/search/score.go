// Package search scores and ranks canonical books against free-text queries.
// Scoring is deterministic: the same query against the same book always
// yields the same score, so result order is reproducible.
package search

import (
	"math"
	"strings"

	"github.com/bookmate-hq/bookmate/internal/normalize"
)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "of": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "by": {}, "for": {}, "is": {}, "it": {},
	"its": {},
}

// Score rates how well a query matches a book's title, author and club
// names. Club names are evaluated independently — a query may match a club
// rather than the book — and the best per-club score wins. Tiers are strict
// priority: the first matching tier decides, nothing stacks.
func Score(query, title, author string, clubs []string) int {
	q := normalize.Normalize(query)
	if q == "" {
		return 0
	}

	t := normalize.Normalize(title)
	a := normalize.Normalize(author)

	if len(clubs) == 0 {
		clubs = []string{""}
	}

	best := 0
	for _, club := range clubs {
		if s := scoreOne(q, t, a, normalize.Normalize(club)); s > best {
			best = s
		}
	}
	return best
}

func scoreOne(q, t, a, c string) int {
	switch {
	case t != "" && t == q:
		return 100
	case t != "" && strings.HasPrefix(t, q):
		return 90
	// A short title does not count as a prefix of a much longer query
	// ("1984" must not prefix-match "1984 by orwell"); that case falls
	// through to the containment tiers.
	case t != "" && strings.HasPrefix(q, t) && 2*len(t) > len(q):
		return 85
	case t != "" && strings.Contains(t, q):
		return 75
	case t != "" && strings.Contains(q, t):
		return 70
	case a != "" && strings.Contains(a, q):
		return 60
	case c != "" && strings.Contains(c, q):
		return 55
	case len(c) > 2 && strings.Contains(q, c):
		return 50
	}
	return wordOverlap(q, t, a, c)
}

// wordOverlap is the fallback tier: the share of meaningful query tokens
// found among the candidate's tokens, scaled to 0–50. Only near-complete
// overlaps count; anything below 40 is no match at all.
func wordOverlap(q, t, a, c string) int {
	queryTokens := filterTokens(strings.Fields(q))
	if len(queryTokens) == 0 {
		return 0
	}

	candidates := filterTokens(strings.Fields(t + " " + a + " " + c))
	candidateSet := make(map[string]struct{}, len(candidates))
	for _, tok := range candidates {
		candidateSet[tok] = struct{}{}
	}

	matched := 0
	for _, qt := range queryTokens {
		if tokenMatches(qt, candidateSet) {
			matched++
		}
	}

	score := float64(matched) / float64(len(queryTokens)) * 50
	if score < 40 {
		return 0
	}
	return int(math.Round(score))
}

// tokenMatches reports whether a query token matches any candidate token:
// exact equality always counts, and tokens of length >= 4 also match on
// mutual containment.
func tokenMatches(qt string, candidates map[string]struct{}) bool {
	if _, ok := candidates[qt]; ok {
		return true
	}
	if len(qt) < 4 {
		return false
	}
	for cand := range candidates {
		if strings.Contains(cand, qt) || strings.Contains(qt, cand) {
			return true
		}
	}
	return false
}

func filterTokens(tokens []string) []string {
	var kept []string
	for _, tok := range tokens {
		if len(tok) <= 1 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}
