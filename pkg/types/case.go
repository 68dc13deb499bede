// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Condition describes the primary diagnosis of a case, with optional coded
// identifiers from clinical vocabularies.
type Condition struct {
	Text   string `json:"text" yaml:"text"`
	ICD10  string `json:"icd10,omitempty" yaml:"icd10,omitempty"`
	SNOMED string `json:"snomed,omitempty" yaml:"snomed,omitempty"`
	MeSH   string `json:"mesh,omitempty" yaml:"mesh,omitempty"`
}

// Anatomy locates the condition: body site, laterality, and any affected
// arterial segments.
type Anatomy struct {
	Site             string   `json:"site" yaml:"site"`
	Laterality       string   `json:"laterality,omitempty" yaml:"laterality,omitempty"`
	ArterialSegments []string `json:"arterial_segments,omitempty" yaml:"arterial_segments,omitempty"`
}

// PriorIntervention records a previous procedure and its outcome status
// (e.g. "failed", "successful", "ongoing").
type PriorIntervention struct {
	Name   string `json:"name" yaml:"name"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
}

// Urgency levels for a case.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// CaseDescription is the structured representation of a patient case. It is
// produced upstream by the case parser and consumed here as an opaque input
// to the matching pipeline.
type CaseDescription struct {
	Condition          Condition           `json:"condition" yaml:"condition"`
	Anatomy            Anatomy             `json:"anatomy" yaml:"anatomy"`
	PriorInterventions []PriorIntervention `json:"prior_interventions,omitempty" yaml:"prior_interventions,omitempty"`
	Comorbidities      []string            `json:"comorbidities,omitempty" yaml:"comorbidities,omitempty"`
	Goals              []string            `json:"goals,omitempty" yaml:"goals,omitempty"`
	Urgency            string              `json:"urgency,omitempty" yaml:"urgency,omitempty"`
	Keywords           []string            `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}
