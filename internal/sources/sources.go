// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources wraps the five external research APIs (PubMed, OpenAlex,
// Crossref, ClinicalTrials.gov, NIH RePORTER) behind a single Source
// interface. Each adapter issues a bounded query and normalizes the
// source-native records into types.ResearchResult.
package sources

import (
	"context"
	"net/http"
	"sort"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

// Source searches a single external research API. Each source implements
// this interface once and is selected through the registry returned by All.
type Source interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]types.ResearchResult, error)
}

// categories is the fixed source-to-category mapping: literature sources
// feed publications, the trial registry feeds clinical_trials, and the
// grant registry feeds grants.
var categories = map[string]types.Category{
	types.SourcePubMed:         types.CategoryPublications,
	types.SourceOpenAlex:       types.CategoryPublications,
	types.SourceCrossref:       types.CategoryPublications,
	types.SourceClinicalTrials: types.CategoryClinicalTrials,
	types.SourceNIHReporter:    types.CategoryGrants,
}

// CategoryOf returns the result category a source feeds, and false for an
// unknown source name.
func CategoryOf(source string) (types.Category, bool) {
	c, ok := categories[source]
	return c, ok
}

// Names returns all known source names in sorted order.
func Names() []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All constructs the five source adapters sharing one HTTP client and
// returns them keyed by source name.
func All(client *http.Client, cfg types.ResearchConfig) map[string]Source {
	return map[string]Source{
		types.SourcePubMed:         &PubMed{Client: client, APIKey: cfg.PubMedAPIKey, UserAgent: cfg.UserAgent},
		types.SourceOpenAlex:       &OpenAlex{Client: client, Email: cfg.OpenAlexEmail, UserAgent: cfg.UserAgent},
		types.SourceCrossref:       &Crossref{Client: client, Email: cfg.CrossrefEmail, UserAgent: cfg.UserAgent},
		types.SourceClinicalTrials: &ClinicalTrials{Client: client, UserAgent: cfg.UserAgent},
		types.SourceNIHReporter:    &NIHReporter{Client: client, UserAgent: cfg.UserAgent},
	}
}

// clampLimit bounds the per-source result count to [1, max], falling back
// to def when the caller passes zero or a negative value.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	return limit
}
