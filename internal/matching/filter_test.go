// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matching

import (
	"testing"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

func candidateWith(workID string, year int, meshTerms []string, country string) Candidate {
	return Candidate{
		WorkID: workID,
		Work:   WorkPayload{Source: "pubmed", Year: year, MeshTerms: meshTerms, Country: country},
	}
}

func TestApplyFiltersDefaults(t *testing.T) {
	candidates := []Candidate{
		candidateWith("recent", 2023, nil, ""),
		candidateWith("old", 2018, nil, ""),
		candidateWith("undated", 0, nil, ""),
	}

	kept := applyFilters(candidates, nil)

	// The default year cutoff drops 2018 but keeps works with no year.
	if len(kept) != 2 {
		t.Fatalf("len(kept) = %d, want 2", len(kept))
	}
	if kept[0].WorkID != "recent" || kept[1].WorkID != "undated" {
		t.Errorf("kept = %v", workIDs(kept))
	}
}

func TestApplyFiltersMinYear(t *testing.T) {
	candidates := []Candidate{
		candidateWith("a", 2022, nil, ""),
		candidateWith("b", 2020, nil, ""),
	}
	kept := applyFilters(candidates, &types.MatchFilters{MinYear: 2021})
	if len(kept) != 1 || kept[0].WorkID != "a" {
		t.Errorf("kept = %v, want [a]", workIDs(kept))
	}
}

func TestApplyFiltersMeshOverlap(t *testing.T) {
	candidates := []Candidate{
		candidateWith("match", 2023, []string{"D016491", "D058729"}, ""),
		candidateWith("miss", 2023, []string{"D000001"}, ""),
		candidateWith("none", 2023, nil, ""),
	}
	kept := applyFilters(candidates, &types.MatchFilters{MeshTerms: []string{"D016491"}})
	if len(kept) != 1 || kept[0].WorkID != "match" {
		t.Errorf("kept = %v, want [match]", workIDs(kept))
	}
}

func TestApplyFiltersCountry(t *testing.T) {
	candidates := []Candidate{
		candidateWith("us", 2023, nil, "US"),
		candidateWith("de", 2023, nil, "DE"),
		candidateWith("blank", 2023, nil, ""),
	}
	kept := applyFilters(candidates, &types.MatchFilters{Countries: []string{"US", "CA"}})
	if len(kept) != 1 || kept[0].WorkID != "us" {
		t.Errorf("kept = %v, want [us]", workIDs(kept))
	}
}

func workIDs(candidates []Candidate) []string {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.WorkID
	}
	return ids
}
