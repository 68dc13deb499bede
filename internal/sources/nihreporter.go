// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sgalonska/another-doctor-app/internal/httputil"
	"github.com/sgalonska/another-doctor-app/pkg/types"
)

// nihReporterAPIBase is the NIH RePORTER project search endpoint. Declared
// as a var so tests can substitute an httptest server.
var nihReporterAPIBase = "https://api.reporter.nih.gov/v2/projects/search"

// NIHReporter queries the NIH RePORTER grant registry.
type NIHReporter struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the source identifier.
func (s *NIHReporter) Name() string { return types.SourceNIHReporter }

// Search queries NIH RePORTER and returns normalized grant records. The
// RePORTER API takes a JSON criteria document over POST.
func (s *NIHReporter) Search(ctx context.Context, query string, limit int) ([]types.ResearchResult, error) {
	limit = clampLimit(limit, 25, 200)

	payload := nihSearchRequest{
		Criteria: nihCriteria{TextPhrase: query},
		IncludeFields: []string{
			"ProjectNum", "ProjectTitle", "AbstractText", "FiscalYear",
			"PrincipalInvestigators", "Organization", "ContactPi",
		},
		Limit: limit,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, unavailable(s.Name(), fmt.Errorf("encoding request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, nihReporterAPIBase, bytes.NewReader(body))
	if err != nil {
		return nil, unavailable(s.Name(), fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", s.UserAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpStatusError(s.Name(), resp.StatusCode)
	}

	var nr nihResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return nil, malformed(s.Name(), fmt.Errorf("parsing NIH RePORTER response: %w", err))
	}

	var results []types.ResearchResult
	for _, project := range nr.Results {
		r, err := parseNIHProject(project)
		if err != nil {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// parseNIHProject normalizes one RePORTER project. Projects without a
// project number are rejected.
func parseNIHProject(project nihProject) (types.ResearchResult, error) {
	if project.ProjectNum == "" {
		return types.ResearchResult{}, fmt.Errorf("project missing project number")
	}

	piName := strings.TrimSpace(project.ContactPI.FirstName + " " + project.ContactPI.LastName)
	var authors []string
	if piName != "" {
		authors = append(authors, piName)
	}

	org := project.Organization.OrgName
	if project.Organization.OrgCity != "" {
		org = fmt.Sprintf("%s (%s, %s)", org, project.Organization.OrgCity, project.Organization.OrgStateCode)
	}

	return types.ResearchResult{
		Source:    types.SourceNIHReporter,
		SourceKey: project.ProjectNum,
		Title:     project.ProjectTitle,
		Abstract:  project.AbstractText,
		Year:      project.FiscalYear,
		Authors:   authors,
		URL:       "https://reporter.nih.gov/project-details/" + project.ProjectNum,
		Extra: map[string]any{
			"pi":           map[string]any{"name": piName, "email": project.ContactPI.Email},
			"organization": org,
		},
	}, nil
}

// NIH RePORTER API JSON structures.
type nihSearchRequest struct {
	Criteria      nihCriteria `json:"criteria"`
	IncludeFields []string    `json:"include_fields"`
	Limit         int         `json:"limit"`
}

type nihCriteria struct {
	TextPhrase string `json:"text_phrase"`
}

type nihResponse struct {
	Results []nihProject `json:"results"`
}

type nihProject struct {
	ProjectNum   string `json:"ProjectNum"`
	ProjectTitle string `json:"ProjectTitle"`
	AbstractText string `json:"AbstractText"`
	FiscalYear   int    `json:"FiscalYear"`
	ContactPI    struct {
		FirstName string `json:"FirstName"`
		LastName  string `json:"LastName"`
		Email     string `json:"Email"`
	} `json:"ContactPi"`
	Organization struct {
		OrgName      string `json:"OrgName"`
		OrgCity      string `json:"OrgCity"`
		OrgStateCode string `json:"OrgStateCode"`
	} `json:"Organization"`
}
