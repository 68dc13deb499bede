// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matching

import (
	"time"

	"github.com/sgalonska/another-doctor-app/internal/sources"
	"github.com/sgalonska/another-doctor-app/pkg/types"
)

// Components derives the six raw scoring counts from a specialist's
// associated works and their institution's metrics. Pubs5Y counts
// literature works from the last five years, TrialsPI counts trials where
// the specialist is principal investigator, and CitationsBucket awards one
// point per five recent publications, capped at three.
func Components(works []Candidate, metrics types.InstitutionMetrics) types.ScoreComponents {
	currentYear := time.Now().Year()

	pubs5y := 0
	trialsPI := 0
	for _, c := range works {
		cat, ok := sources.CategoryOf(c.Work.Source)
		if !ok {
			continue
		}
		switch cat {
		case types.CategoryPublications:
			if c.Work.Year >= currentYear-5 {
				pubs5y++
			}
		case types.CategoryClinicalTrials:
			if c.Work.IsPI {
				trialsPI++
			}
		}
	}

	citationsBucket := pubs5y / 5
	if citationsBucket > 3 {
		citationsBucket = 3
	}

	return types.ScoreComponents{
		Pubs5Y:          pubs5y,
		TrialsPI:        trialsPI,
		CitationsBucket: citationsBucket,
		InstPubs:        metrics.Pubs,
		InstTrials:      metrics.Trials,
		NIHGrants:       metrics.NIHGrants,
	}
}

// Scores applies the three-tier scoring formula:
//
//	doctor      = 2*pubs_5y + 5*trials_pi + 1*citations_bucket
//	institution = 0.5*inst_pubs + 2*inst_trials + 0.5*nih_grants
//	total       = doctor + 0.5*institution
func Scores(c types.ScoreComponents) (doctorScore, institutionScore, totalScore float64) {
	doctorScore = float64(2*c.Pubs5Y + 5*c.TrialsPI + c.CitationsBucket)
	institutionScore = 0.5*float64(c.InstPubs) + 2*float64(c.InstTrials) + 0.5*float64(c.NIHGrants)
	totalScore = doctorScore + 0.5*institutionScore
	return doctorScore, institutionScore, totalScore
}
