// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// Crossref queries the Crossref DOI-metadata registry.
type Crossref struct {
	Client *http.Client
	// Email joins the Crossref polite pool via the User-Agent mailto.
	Email     string
	UserAgent string
}

// Name returns the source identifier.
func (s *Crossref) Name() string { return types.SourceCrossref }

// Search queries Crossref and returns normalized work records.
func (s *Crossref) Search(ctx context.Context, query string, limit int) ([]types.ResearchResult, error) {
	limit = clampLimit(limit, 25, 200)

	params := url.Values{
		"query": {query},
		"rows":  {strconv.Itoa(limit)},
		"sort":  {"issued"},
		"order": {"desc"},
	}

	reqURL := crossrefAPIBase + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, unavailable(s.Name(), fmt.Errorf("creating request: %w", err))
	}
	ua := s.UserAgent
	if s.Email != "" {
		ua = fmt.Sprintf("%s (mailto:%s)", s.UserAgent, s.Email)
	}
	req.Header.Set("User-Agent", ua)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpStatusError(s.Name(), resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, malformed(s.Name(), fmt.Errorf("parsing Crossref response: %w", err))
	}

	var results []types.ResearchResult
	for _, item := range cr.Message.Items {
		r, err := parseCrossrefWork(item)
		if err != nil {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// parseCrossrefWork normalizes one Crossref work. Works without a DOI or
// title are rejected.
func parseCrossrefWork(work crossrefWork) (types.ResearchResult, error) {
	if work.DOI == "" || len(work.Title) == 0 || work.Title[0] == "" {
		return types.ResearchResult{}, fmt.Errorf("work missing DOI or title")
	}

	var authors []string
	for _, a := range work.Author {
		if a.Given != "" && a.Family != "" {
			authors = append(authors, a.Given+" "+a.Family)
		}
	}

	// Prefer the print date, falling back to online publication.
	year := firstDatePart(work.PublishedPrint)
	if year == 0 {
		year = firstDatePart(work.PublishedOnline)
	}

	journal := ""
	if len(work.ContainerTitle) > 0 {
		journal = work.ContainerTitle[0]
	}

	u := work.URL
	if u == "" {
		u = "https://doi.org/" + work.DOI
	}

	return types.ResearchResult{
		Source:    types.SourceCrossref,
		SourceKey: work.DOI,
		Title:     work.Title[0],
		Abstract:  work.Abstract,
		Year:      year,
		Authors:   authors,
		URL:       u,
		Extra: map[string]any{
			"journal": journal,
			"type":    work.Type,
			"doi":     work.DOI,
		},
	}, nil
}

// firstDatePart returns the year component of a Crossref date field.
func firstDatePart(d crossrefDate) int {
	if len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
		return d.DateParts[0][0]
	}
	return 0
}

// Crossref API JSON structures.
type crossrefResponse struct {
	Message struct {
		Items []crossrefWork `json:"items"`
	} `json:"message"`
}

type crossrefWork struct {
	DOI             string           `json:"DOI"`
	Title           []string         `json:"title"`
	Abstract        string           `json:"abstract"`
	Type            string           `json:"type"`
	URL             string           `json:"URL"`
	ContainerTitle  []string         `json:"container-title"`
	Author          []crossrefAuthor `json:"author"`
	PublishedPrint  crossrefDate     `json:"published-print"`
	PublishedOnline crossrefDate     `json:"published-online"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}
