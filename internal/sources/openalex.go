// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

// openAlexAPIBase is the OpenAlex Works search endpoint. Declared as a var
// so tests can substitute an httptest server.
var openAlexAPIBase = "https://api.openalex.org/works"

// OpenAlex queries the OpenAlex scholarly-works catalog.
type OpenAlex struct {
	Client *http.Client
	// Email is sent as mailto parameter for polite pool access.
	Email     string
	UserAgent string
}

// Name returns the source identifier.
func (s *OpenAlex) Name() string { return types.SourceOpenAlex }

// Search queries OpenAlex and returns normalized work records.
func (s *OpenAlex) Search(ctx context.Context, query string, limit int) ([]types.ResearchResult, error) {
	limit = clampLimit(limit, 25, 200)

	params := url.Values{
		"search":   {query},
		"per_page": {strconv.Itoa(limit)},
		"sort":     {"publication_year:desc"},
	}
	if s.Email != "" {
		params.Set("mailto", s.Email)
	}

	reqURL := openAlexAPIBase + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, unavailable(s.Name(), fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpStatusError(s.Name(), resp.StatusCode)
	}

	var oar openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&oar); err != nil {
		return nil, malformed(s.Name(), fmt.Errorf("parsing OpenAlex response: %w", err))
	}

	var results []types.ResearchResult
	for _, work := range oar.Results {
		r, err := parseOpenAlexWork(work)
		if err != nil {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// parseOpenAlexWork normalizes one OpenAlex work. Works without an ID are
// rejected; institution names are deduplicated and concepts kept only above
// a confidence of 0.3.
func parseOpenAlexWork(work openAlexWork) (types.ResearchResult, error) {
	key := strings.TrimPrefix(work.ID, "https://openalex.org/")
	if key == "" {
		return types.ResearchResult{}, fmt.Errorf("work missing ID")
	}

	var authors []string
	seen := make(map[string]bool)
	var institutions []string
	for _, authorship := range work.Authorships {
		if authorship.Author.DisplayName != "" {
			authors = append(authors, authorship.Author.DisplayName)
		}
		for _, inst := range authorship.Institutions {
			if inst.DisplayName != "" && !seen[inst.DisplayName] {
				seen[inst.DisplayName] = true
				institutions = append(institutions, inst.DisplayName)
			}
		}
	}
	sort.Strings(institutions)

	var concepts []string
	for _, c := range work.Concepts {
		if c.Score > 0.3 && c.DisplayName != "" {
			concepts = append(concepts, c.DisplayName)
		}
	}

	return types.ResearchResult{
		Source:    types.SourceOpenAlex,
		SourceKey: key,
		Title:     work.Title,
		Abstract:  reconstructAbstract(work.AbstractInvertedIndex),
		Year:      work.PublicationYear,
		Authors:   authors,
		URL:       work.ID,
		Extra: map[string]any{
			"concepts":       concepts,
			"institutions":   institutions,
			"citation_count": work.CitedByCount,
			"doi":            strings.TrimPrefix(work.DOI, "https://doi.org/"),
		},
	}, nil
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The inverted index maps each word to the positions where it
// appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	DOI                   string               `json:"doi"`
	PublicationYear       int                  `json:"publication_year"`
	CitedByCount          int                  `json:"cited_by_count"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	Concepts              []openAlexConcept    `json:"concepts"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
}

type openAlexAuthorship struct {
	Author       openAlexEntity   `json:"author"`
	Institutions []openAlexEntity `json:"institutions"`
}

type openAlexEntity struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type openAlexConcept struct {
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
}
