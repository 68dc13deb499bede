// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research fans a query out to the external research sources
// concurrently, normalizes and ranks the results, and returns one
// aggregated envelope. A failing source never affects its siblings: its
// failure is recorded as an error string and the envelope is still built
// from the sources that succeeded.
package research

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/sgalonska/another-doctor-app/internal/sources"
	"github.com/sgalonska/another-doctor-app/pkg/types"
)

// Service aggregates research data from the registered sources.
type Service struct {
	sources map[string]sources.Source
	cfg     types.ResearchConfig
	logw    io.Writer
}

// NewService builds an aggregation service over the given source registry.
// Warnings about failed sources are written to logw.
func NewService(reg map[string]sources.Source, cfg types.ResearchConfig, logw io.Writer) *Service {
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = 30 * time.Second
	}
	if cfg.MaxPerSource <= 0 {
		cfg.MaxPerSource = 25
	}
	return &Service{sources: reg, cfg: cfg, logw: logw}
}

// SearchAll queries the selected sources concurrently and returns the
// aggregated envelope. include restricts the source set; nil or empty means
// all registered sources. maxPerSource is clamped to [1,200]; zero selects
// the configured default.
func (s *Service) SearchAll(ctx context.Context, query string, maxPerSource int, include []string) (types.AggregatedResults, error) {
	if query == "" {
		return types.AggregatedResults{}, fmt.Errorf("query is empty")
	}

	start := time.Now()

	if maxPerSource <= 0 {
		maxPerSource = s.cfg.MaxPerSource
	}
	if maxPerSource > 200 {
		maxPerSource = 200
	}

	selected := s.resolveSources(include)

	type sourceResult struct {
		name    string
		results []types.ResearchResult
		err     error
	}

	ch := make(chan sourceResult, len(selected))
	var wg sync.WaitGroup

	for _, name := range selected {
		src := s.sources[name]
		wg.Add(1)
		go func(name string, src sources.Source) {
			defer wg.Done()
			// Each source carries its own timeout so one slow source
			// cannot hold up the join longer than its own budget.
			sctx, cancel := context.WithTimeout(ctx, s.cfg.SourceTimeout)
			defer cancel()
			results, err := src.Search(sctx, query, maxPerSource)
			ch <- sourceResult{name: name, results: results, err: err}
		}(name, src)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	byCategory := map[types.Category][]types.ResearchResult{}
	var errors []string
	for sr := range ch {
		if sr.err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", sr.name, sr.err))
			fmt.Fprintf(s.logw, "warning: source %s failed: %v\n", sr.name, sr.err)
			continue
		}
		cat, ok := sources.CategoryOf(sr.name)
		if !ok {
			continue
		}
		byCategory[cat] = append(byCategory[cat], sr.results...)
	}
	sort.Strings(errors)

	agg := types.AggregatedResults{
		Query:          query,
		SourcesQueried: selected,
		Publications:   Rank(byCategory[types.CategoryPublications], query),
		ClinicalTrials: Rank(byCategory[types.CategoryClinicalTrials], query),
		Grants:         Rank(byCategory[types.CategoryGrants], query),
		Errors:         errors,
	}
	agg.TotalResults = len(agg.Publications) + len(agg.ClinicalTrials) + len(agg.Grants)
	agg.ExecutionTimeMS = time.Since(start).Milliseconds()
	return agg, nil
}

// SearchPublications queries only the literature sources and returns the
// publications bucket.
func (s *Service) SearchPublications(ctx context.Context, query string, maxResults int) ([]types.ResearchResult, error) {
	perSource := maxResults / 3
	agg, err := s.SearchAll(ctx, query, perSource, []string{
		types.SourcePubMed, types.SourceOpenAlex, types.SourceCrossref,
	})
	if err != nil {
		return nil, err
	}
	return agg.Publications, nil
}

// SearchClinicalTrials queries only the trial registry.
func (s *Service) SearchClinicalTrials(ctx context.Context, query string, maxResults int) ([]types.ResearchResult, error) {
	agg, err := s.SearchAll(ctx, query, maxResults, []string{types.SourceClinicalTrials})
	if err != nil {
		return nil, err
	}
	return agg.ClinicalTrials, nil
}

// SearchGrants queries only the grant registry.
func (s *Service) SearchGrants(ctx context.Context, query string, maxResults int) ([]types.ResearchResult, error) {
	agg, err := s.SearchAll(ctx, query, maxResults, []string{types.SourceNIHReporter})
	if err != nil {
		return nil, err
	}
	return agg.Grants, nil
}

// resolveSources intersects the requested source names with the registry,
// defaulting to every registered source. The result is sorted so the
// envelope's sources_queried field is deterministic.
func (s *Service) resolveSources(include []string) []string {
	var selected []string
	if len(include) == 0 {
		for name := range s.sources {
			selected = append(selected, name)
		}
	} else {
		seen := make(map[string]bool)
		for _, name := range include {
			if _, ok := s.sources[name]; ok && !seen[name] {
				seen[name] = true
				selected = append(selected, name)
			}
		}
	}
	sort.Strings(selected)
	return selected
}
