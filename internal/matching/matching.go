// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package matching turns a structured case description into a ranked,
// evidence-backed list of specialist matches. The pipeline runs four
// stages in order: semantic candidate retrieval, symbolic filtering,
// per-specialist aggregation, and score computation. Each stage is a pure
// function of its input; the only external calls are the semantic
// retrieval service and the specialist directory.
package matching

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

// WorkPayload carries the indexed metadata of a candidate work, stored
// alongside its vector in the semantic index.
type WorkPayload struct {
	Source    string   `json:"source"`
	SourceKey string   `json:"source_key"`
	Title     string   `json:"title"`
	Year      int      `json:"year"`
	MeshTerms []string `json:"mesh_terms"`
	Country   string   `json:"country"`
	IsPI      bool     `json:"is_pi"`
	URL       string   `json:"url"`
}

// Candidate is one work returned by semantic retrieval, with its
// similarity score.
type Candidate struct {
	WorkID string      `json:"work_id"`
	Score  float64     `json:"score"`
	Work   WorkPayload `json:"payload"`
}

// VectorSearcher is the semantic retrieval collaborator: it embeds the
// given text and returns the closest indexed works at or above threshold.
type VectorSearcher interface {
	Search(ctx context.Context, text string, topK int, threshold float64) ([]Candidate, error)
}

// Directory is the specialist/institution lookup collaborator.
type Directory interface {
	// SpecialistsForWorks maps each work ID to the specialists associated
	// with it. The relation is many-to-many.
	SpecialistsForWorks(ctx context.Context, workIDs []string) (map[string][]string, error)

	// Specialist returns display metadata for a specialist.
	Specialist(ctx context.Context, id string) (types.Specialist, error)

	// InstitutionMetrics returns the aggregate research counts of the
	// specialist's institution.
	InstitutionMetrics(ctx context.Context, specialistID string) (types.InstitutionMetrics, error)
}

// CollaboratorError reports a failed call to a matching collaborator.
// Unlike source failures during aggregation it is fatal to the whole
// request: a ranked list without valid scores would be misleading.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// Engine executes the matching pipeline.
type Engine struct {
	vectors VectorSearcher
	dir     Directory
	cfg     types.MatchingConfig
	logw    io.Writer
}

// NewEngine builds a matching engine over the given collaborators.
// Warnings (e.g. degraded-mode activation) are written to logw.
func NewEngine(vectors VectorSearcher, dir Directory, cfg types.MatchingConfig, logw io.Writer) *Engine {
	if cfg.TopK <= 0 {
		cfg.TopK = 100
	}
	if cfg.ScoreThreshold <= 0 {
		cfg.ScoreThreshold = 0.7
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	return &Engine{vectors: vectors, dir: dir, cfg: cfg, logw: logw}
}

// FindMatches runs the four-stage pipeline and returns up to maxResults
// specialists sorted by total score descending. Zero retrieval candidates
// is an empty result, not an error. A failing collaborator surfaces as a
// CollaboratorError unless degraded mode substitutes sample candidates for
// a semantic retrieval outage.
func (e *Engine) FindMatches(ctx context.Context, c types.CaseDescription, filters *types.MatchFilters, maxResults int) ([]types.MatchResult, error) {
	if maxResults <= 0 {
		maxResults = e.cfg.MaxResults
	}

	// Stage 1: semantic candidate retrieval.
	text := SyntheticAbstract(c)
	candidates, err := e.vectors.Search(ctx, text, e.cfg.TopK, e.cfg.ScoreThreshold)
	if err != nil {
		if !e.cfg.DegradedMode {
			return nil, &CollaboratorError{Op: "semantic retrieval", Err: err}
		}
		fmt.Fprintf(e.logw, "warning: semantic retrieval unavailable, using degraded-mode sample candidates: %v\n", err)
		candidates = sampleCandidates()
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	// Stage 2: symbolic filtering.
	candidates = applyFilters(candidates, filters)
	if len(candidates) == 0 {
		return nil, nil
	}

	// Stage 3: per-specialist aggregation.
	bySpecialist, err := e.aggregate(ctx, candidates)
	if err != nil {
		return nil, err
	}

	// Stage 4: scoring, evidence, explanation.
	matches, err := e.score(ctx, bySpecialist, c, filters)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].TotalScore > matches[j].TotalScore
	})
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches, nil
}

// aggregate groups candidates by specialist, preserving similarity order
// within each group.
func (e *Engine) aggregate(ctx context.Context, candidates []Candidate) (map[string][]Candidate, error) {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.WorkID
	}

	workSpecialists, err := e.dir.SpecialistsForWorks(ctx, ids)
	if err != nil {
		return nil, &CollaboratorError{Op: "specialist lookup", Err: err}
	}

	bySpecialist := make(map[string][]Candidate)
	for _, c := range candidates {
		for _, specialistID := range workSpecialists[c.WorkID] {
			bySpecialist[specialistID] = append(bySpecialist[specialistID], c)
		}
	}
	return bySpecialist, nil
}

// score computes components, scores, evidence, and explanation for each
// specialist. Specialist IDs are visited in sorted order so the output is
// deterministic for equal total scores.
func (e *Engine) score(ctx context.Context, bySpecialist map[string][]Candidate, c types.CaseDescription, filters *types.MatchFilters) ([]types.MatchResult, error) {
	ids := make([]string, 0, len(bySpecialist))
	for id := range bySpecialist {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var matches []types.MatchResult
	for _, id := range ids {
		specialist, err := e.dir.Specialist(ctx, id)
		if err != nil {
			return nil, &CollaboratorError{Op: "specialist lookup", Err: err}
		}
		if filters != nil && len(filters.Specialties) > 0 && !contains(filters.Specialties, specialist.Specialty) {
			continue
		}

		metrics, err := e.dir.InstitutionMetrics(ctx, id)
		if err != nil {
			return nil, &CollaboratorError{Op: "institution lookup", Err: err}
		}

		works := bySpecialist[id]
		components := Components(works, metrics)
		doctorScore, institutionScore, totalScore := Scores(components)

		matches = append(matches, types.MatchResult{
			SpecialistID:     id,
			Name:             specialist.Name,
			Institution:      specialist.Institution,
			Specialty:        specialist.Specialty,
			DoctorScore:      doctorScore,
			InstitutionScore: institutionScore,
			TotalScore:       totalScore,
			Components:       components,
			Evidence:         buildEvidence(works),
			Explanation:      explain(components, c),
		})
	}
	return matches, nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
