// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the another-doctor
// research aggregation and specialist matching pipeline.
package types

// Source names for the five external research APIs.
const (
	SourcePubMed         = "pubmed"
	SourceOpenAlex       = "openalex"
	SourceCrossref       = "crossref"
	SourceClinicalTrials = "clinical_trials"
	SourceNIHReporter    = "nih_reporter"
)

// Category buckets aggregated results by the kind of record a source produces.
type Category string

const (
	CategoryPublications   Category = "publications"
	CategoryClinicalTrials Category = "clinical_trials"
	CategoryGrants         Category = "grants"
)

// ResearchResult is the canonical record shape all sources are normalized
// into before ranking and bucketing. (Source, SourceKey) is a stable external
// identity: re-parsing the same raw record yields an identical value.
type ResearchResult struct {
	// Source identifies which adapter produced this result.
	Source string `json:"source" yaml:"source"`

	// SourceKey is the source-native identifier (PMID, OpenAlex ID, DOI,
	// NCT number, or NIH project number), unique within Source.
	SourceKey string `json:"source_key" yaml:"source_key"`

	// Title is the record title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Abstract is the abstract or summary text.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Year is the publication, start, or fiscal year. Zero means unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Authors lists authors, investigators, or PIs in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// URL links to the record on the source's site.
	URL string `json:"url" yaml:"url"`

	// RelevanceScore is the query-dependent ranking signal, recomputed per
	// aggregation request. Always >= 0.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// Extra preserves source-specific detail that has no canonical field
	// (MeSH terms, journal, citation counts, trial status, PI info).
	Extra map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// AggregatedResults is the envelope returned by an aggregation request.
// TotalResults always equals the sum of the three bucket lengths; Errors
// holds one "{source}: {message}" entry per failed source.
type AggregatedResults struct {
	Query           string           `json:"query" yaml:"query"`
	SourcesQueried  []string         `json:"sources_queried" yaml:"sources_queried"`
	TotalResults    int              `json:"total_results" yaml:"total_results"`
	ExecutionTimeMS int64            `json:"execution_time_ms" yaml:"execution_time_ms"`
	Publications    []ResearchResult `json:"publications" yaml:"publications"`
	ClinicalTrials  []ResearchResult `json:"clinical_trials" yaml:"clinical_trials"`
	Grants          []ResearchResult `json:"grants" yaml:"grants"`
	Errors          []string         `json:"errors" yaml:"errors"`
}
