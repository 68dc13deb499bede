// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matching

import "fmt"

// sampleCandidates returns a deterministic candidate set used only when
// degraded mode is enabled and semantic retrieval is unavailable. The data
// is recognizably synthetic so a degraded response cannot be mistaken for
// live index content.
func sampleCandidates() []Candidate {
	candidates := make([]Candidate, 0, 20)
	for i := 0; i < 20; i++ {
		candidates = append(candidates, Candidate{
			WorkID: fmt.Sprintf("sample-work-%d", i+1),
			Score:  0.9 - float64(i)*0.01,
			Work: WorkPayload{
				Source:    "pubmed",
				SourceKey: fmt.Sprintf("PMID%d", 12345000+i),
				Title:     fmt.Sprintf("Sample Study on Critical Limb Ischemia Treatment %d", i+1),
				Year:      2023 - (i % 5),
				MeshTerms: []string{"D016491", "D058729"},
				Country:   "US",
				IsPI:      i%3 == 0,
				URL:       fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%d/", 12345000+i),
			},
		})
	}
	return candidates
}
