// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matching

import (
	"testing"
	"time"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

func TestScores(t *testing.T) {
	c := types.ScoreComponents{
		Pubs5Y:          8,
		TrialsPI:        2,
		CitationsBucket: 1,
		InstPubs:        45,
		InstTrials:      12,
		NIHGrants:       3,
	}

	doctor, institution, total := Scores(c)
	if doctor != 27 {
		t.Errorf("doctor = %v, want 27", doctor)
	}
	if institution != 47.0 {
		t.Errorf("institution = %v, want 47.0", institution)
	}
	if total != 50.5 {
		t.Errorf("total = %v, want 50.5", total)
	}
}

func TestScoresZero(t *testing.T) {
	doctor, institution, total := Scores(types.ScoreComponents{})
	if doctor != 0 || institution != 0 || total != 0 {
		t.Errorf("scores = %v/%v/%v, want all zero", doctor, institution, total)
	}
}

func TestComponents(t *testing.T) {
	year := time.Now().Year()
	works := []Candidate{
		// Counted: publication in the 5-year window.
		{Work: WorkPayload{Source: "pubmed", Year: year - 2}},
		{Work: WorkPayload{Source: "openalex", Year: year - 5}},
		// Too old for the window.
		{Work: WorkPayload{Source: "crossref", Year: year - 6}},
		// Trials count only with PI role.
		{Work: WorkPayload{Source: "clinical_trials", Year: year, IsPI: true}},
		{Work: WorkPayload{Source: "clinical_trials", Year: year, IsPI: false}},
		// Grants contribute through institution metrics, not here.
		{Work: WorkPayload{Source: "nih_reporter", Year: year}},
		// Unknown sources are ignored.
		{Work: WorkPayload{Source: "scopus", Year: year}},
	}
	metrics := types.InstitutionMetrics{Pubs: 45, Trials: 12, NIHGrants: 3}

	c := Components(works, metrics)
	want := types.ScoreComponents{
		Pubs5Y:          2,
		TrialsPI:        1,
		CitationsBucket: 0,
		InstPubs:        45,
		InstTrials:      12,
		NIHGrants:       3,
	}
	if c != want {
		t.Errorf("Components() = %+v, want %+v", c, want)
	}
}

func TestCitationsBucketBoundaries(t *testing.T) {
	year := time.Now().Year()
	tests := []struct {
		pubs int
		want int
	}{
		{4, 0},
		{5, 1},
		{14, 2},
		{15, 3},
		{30, 3},
	}
	for _, tt := range tests {
		works := make([]Candidate, tt.pubs)
		for i := range works {
			works[i] = Candidate{Work: WorkPayload{Source: "pubmed", Year: year}}
		}
		c := Components(works, types.InstitutionMetrics{})
		if c.CitationsBucket != tt.want {
			t.Errorf("CitationsBucket with %d pubs = %d, want %d", tt.pubs, c.CitationsBucket, tt.want)
		}
	}
}
