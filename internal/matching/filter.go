// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matching

import "github.com/sgalonska/another-doctor-app/pkg/types"

// defaultMinYear is applied when the caller does not set a year filter.
const defaultMinYear = 2019

// applyFilters runs the symbolic (rule-based) filters over the retrieval
// candidates: minimum year, MeSH term overlap, and geography. A nil
// filters value applies the defaults.
func applyFilters(candidates []Candidate, filters *types.MatchFilters) []Candidate {
	minYear := defaultMinYear
	var meshTerms, countries []string
	if filters != nil {
		if filters.MinYear > 0 {
			minYear = filters.MinYear
		}
		meshTerms = filters.MeshTerms
		countries = filters.Countries
	}

	var kept []Candidate
	for _, c := range candidates {
		if c.Work.Year > 0 && c.Work.Year < minYear {
			continue
		}
		if len(meshTerms) > 0 && !overlaps(c.Work.MeshTerms, meshTerms) {
			continue
		}
		if len(countries) > 0 && !contains(countries, c.Work.Country) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// overlaps reports whether the two term lists share at least one element.
func overlaps(a, b []string) bool {
	for _, t := range b {
		if contains(a, t) {
			return true
		}
	}
	return false
}
