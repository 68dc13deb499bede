// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

// maxEvidence bounds the number of works surfaced to justify a match.
const maxEvidence = 5

// buildEvidence selects the specialist's top works by similarity and
// annotates each with the identifier field of its source.
func buildEvidence(works []Candidate) []types.Evidence {
	sorted := make([]Candidate, len(works))
	copy(sorted, works)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if len(sorted) > maxEvidence {
		sorted = sorted[:maxEvidence]
	}

	evidence := make([]types.Evidence, 0, len(sorted))
	for _, c := range sorted {
		ev := types.Evidence{
			Type:           c.Work.Source,
			Title:          c.Work.Title,
			Year:           c.Work.Year,
			URL:            c.Work.URL,
			RelevanceScore: c.Score,
		}
		switch c.Work.Source {
		case types.SourcePubMed:
			ev.PMID = c.Work.SourceKey
		case types.SourceClinicalTrials:
			ev.NCTID = c.Work.SourceKey
			if c.Work.IsPI {
				ev.Role = "PI"
			} else {
				ev.Role = "Investigator"
			}
		case types.SourceNIHReporter:
			ev.ProjectID = c.Work.SourceKey
		case types.SourceCrossref:
			ev.DOI = c.Work.SourceKey
		}
		evidence = append(evidence, ev)
	}
	return evidence
}

// explain builds the human-readable match explanation from non-zero score
// components in a fixed order, falling back to a generic sentence when no
// component contributed.
func explain(c types.ScoreComponents, caseDesc types.CaseDescription) string {
	var parts []string

	if c.Pubs5Y > 0 {
		parts = append(parts, fmt.Sprintf("%d recent publications related to %s", c.Pubs5Y, caseDesc.Condition.Text))
	}
	if c.TrialsPI > 0 {
		parts = append(parts, fmt.Sprintf("Principal investigator on %d clinical trials", c.TrialsPI))
	}
	if c.InstPubs > 10 {
		parts = append(parts, fmt.Sprintf("Institution has strong research presence with %d related publications", c.InstPubs))
	}

	if len(parts) == 0 {
		parts = append(parts, "Matched based on semantic similarity to case description")
	}
	return strings.Join(parts, ". ") + "."
}
