// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"sort"
	"strings"
	"time"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

// Rank scores each result against the query and returns a new slice sorted
// by (relevance desc, year desc). The sort is stable: equal-score results
// keep their fetch order, so ranking the same input twice yields the same
// ordering.
func Rank(results []types.ResearchResult, query string) []types.ResearchResult {
	currentYear := time.Now().Year()
	queryTerms := strings.Fields(strings.ToLower(query))

	ranked := make([]types.ResearchResult, len(results))
	copy(ranked, results)

	for i := range ranked {
		ranked[i].RelevanceScore = scoreResult(ranked[i], queryTerms, currentYear)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RelevanceScore != ranked[j].RelevanceScore {
			return ranked[i].RelevanceScore > ranked[j].RelevanceScore
		}
		return ranked[i].Year > ranked[j].Year
	})
	return ranked
}

// scoreResult computes the additive relevance score: +2.0 per query term in
// the title, +1.0 per term in the abstract, a recency bonus (+1.0 within 5
// years, +0.5 within 10), and a citation bonus for OpenAlex results.
func scoreResult(r types.ResearchResult, queryTerms []string, currentYear int) float64 {
	score := 0.0

	titleLower := strings.ToLower(r.Title)
	abstractLower := strings.ToLower(r.Abstract)
	for _, term := range queryTerms {
		if strings.Contains(titleLower, term) {
			score += 2.0
		}
		if strings.Contains(abstractLower, term) {
			score += 1.0
		}
	}

	switch {
	case r.Year >= currentYear-5:
		score += 1.0
	case r.Year >= currentYear-10:
		score += 0.5
	}

	if r.Source == types.SourceOpenAlex {
		switch citations := citationCount(r); {
		case citations > 100:
			score += 2.0
		case citations > 10:
			score += 1.0
		}
	}

	return score
}

// citationCount reads the citation count from a result's extra data. The
// value arrives as int when set by the adapter and as float64 after a JSON
// or YAML round trip.
func citationCount(r types.ResearchResult) int {
	v, ok := r.Extra["citation_count"]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
