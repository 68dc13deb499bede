// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MatchFilters holds the symbolic (rule-based) filters applied to semantic
// retrieval candidates before aggregation.
type MatchFilters struct {
	// MinYear excludes works published before this year. Zero means the
	// default (2019) applies.
	MinYear int `json:"min_year,omitempty" yaml:"min_year,omitempty"`

	// MeshTerms, when non-empty, requires at least one overlapping coded
	// term on the candidate work.
	MeshTerms []string `json:"mesh_terms,omitempty" yaml:"mesh_terms,omitempty"`

	// Countries, when non-empty, restricts candidates by country code.
	Countries []string `json:"countries,omitempty" yaml:"countries,omitempty"`

	// Specialties, when non-empty, restricts matched specialists by specialty.
	Specialties []string `json:"specialties,omitempty" yaml:"specialties,omitempty"`
}

// ScoreComponents holds the six raw counts feeding the specialist scoring
// formula.
type ScoreComponents struct {
	Pubs5Y          int `json:"pubs_5y" yaml:"pubs_5y"`
	TrialsPI        int `json:"trials_pi" yaml:"trials_pi"`
	CitationsBucket int `json:"citations_bucket" yaml:"citations_bucket"`
	InstPubs        int `json:"inst_pubs" yaml:"inst_pubs"`
	InstTrials      int `json:"inst_trials" yaml:"inst_trials"`
	NIHGrants       int `json:"nih_grants" yaml:"nih_grants"`
}

// Evidence is one work surfaced to justify a specialist match, annotated
// with the identifier type of its source.
type Evidence struct {
	Type           string  `json:"type" yaml:"type"`
	Title          string  `json:"title" yaml:"title"`
	Year           int     `json:"year,omitempty" yaml:"year,omitempty"`
	URL            string  `json:"url,omitempty" yaml:"url,omitempty"`
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// Identifier fields, one of which is set depending on Type.
	PMID      string `json:"pmid,omitempty" yaml:"pmid,omitempty"`
	NCTID     string `json:"nct_id,omitempty" yaml:"nct_id,omitempty"`
	ProjectID string `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	DOI       string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Role is "PI" or "Investigator" for clinical trials.
	Role string `json:"role,omitempty" yaml:"role,omitempty"`
}

// MatchResult is one ranked specialist match. TotalScore always equals
// DoctorScore + 0.5*InstitutionScore.
type MatchResult struct {
	SpecialistID string `json:"specialist_id" yaml:"specialist_id"`
	Name         string `json:"name" yaml:"name"`
	Institution  string `json:"institution" yaml:"institution"`
	Specialty    string `json:"specialty,omitempty" yaml:"specialty,omitempty"`

	DoctorScore      float64         `json:"doctor_score" yaml:"doctor_score"`
	InstitutionScore float64         `json:"institution_score" yaml:"institution_score"`
	TotalScore       float64         `json:"total_score" yaml:"total_score"`
	Components       ScoreComponents `json:"components" yaml:"components"`

	Evidence    []Evidence `json:"evidence" yaml:"evidence"`
	Explanation string     `json:"explanation" yaml:"explanation"`
}

// InstitutionMetrics holds an institution's aggregate research counts used
// for the institution half of the scoring formula.
type InstitutionMetrics struct {
	Pubs      int `json:"pubs" yaml:"pubs"`
	Trials    int `json:"trials" yaml:"trials"`
	NIHGrants int `json:"nih_grants" yaml:"nih_grants"`
}

// Specialist holds display metadata for a matched specialist.
type Specialist struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Institution string `json:"institution" yaml:"institution"`
	Specialty   string `json:"specialty,omitempty" yaml:"specialty,omitempty"`
}
