// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "another-doctor/1.0").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ResearchConfig holds settings for the research aggregation service.
type ResearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxPerSource is the default maximum results requested from each
	// source (default 25, clamped to [1,200] per request).
	MaxPerSource int `json:"max_per_source" yaml:"max_per_source"`

	// SourceTimeout bounds each source's search independently of its
	// siblings (default 30s).
	SourceTimeout time.Duration `json:"source_timeout" yaml:"source_timeout"`

	// PubMedAPIKey raises NCBI rate limits when set.
	PubMedAPIKey string `json:"pubmed_api_key,omitempty" yaml:"pubmed_api_key,omitempty"`

	// CrossrefEmail is sent in the User-Agent mailto for polite pool access.
	CrossrefEmail string `json:"crossref_email,omitempty" yaml:"crossref_email,omitempty"`

	// OpenAlexEmail is sent as the mailto parameter for polite pool access.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty"`
}

// MatchingConfig holds settings for the specialist matching engine.
type MatchingConfig struct {
	HTTPConfig `yaml:",inline"`

	// VectorServiceURL is the base URL of the semantic retrieval service.
	VectorServiceURL string `json:"vector_service_url" yaml:"vector_service_url"`

	// VectorAPIKey authenticates against the semantic retrieval service.
	VectorAPIKey string `json:"vector_api_key,omitempty" yaml:"vector_api_key,omitempty"`

	// TopK is the number of candidate works requested from semantic
	// retrieval (default 100).
	TopK int `json:"top_k" yaml:"top_k"`

	// ScoreThreshold is the minimum similarity for a candidate (default 0.7).
	ScoreThreshold float64 `json:"score_threshold" yaml:"score_threshold"`

	// MaxResults is the default number of matches returned (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// DirectoryPath is the path to the specialist directory SQLite database.
	DirectoryPath string `json:"directory_path" yaml:"directory_path"`

	// DegradedMode, when true, substitutes deterministic sample candidates
	// if the semantic retrieval service is unavailable. When false (the
	// default) such an outage surfaces as an error.
	DegradedMode bool `json:"degraded_mode" yaml:"degraded_mode"`
}

// AppConfig groups all component configurations.
type AppConfig struct {
	Research ResearchConfig `json:"research" yaml:"research"`
	Matching MatchingConfig `json:"matching" yaml:"matching"`
}
