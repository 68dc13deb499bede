// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

// ctgovAPIBase is the ClinicalTrials.gov full-studies endpoint. Declared as
// a var so tests can substitute an httptest server.
var ctgovAPIBase = "https://clinicaltrials.gov/api/query/full_studies"

// ClinicalTrials queries the ClinicalTrials.gov study registry.
type ClinicalTrials struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the source identifier.
func (s *ClinicalTrials) Name() string { return types.SourceClinicalTrials }

// Search queries ClinicalTrials.gov and returns normalized study records.
func (s *ClinicalTrials) Search(ctx context.Context, query string, limit int) ([]types.ResearchResult, error) {
	limit = clampLimit(limit, 25, 100)

	params := url.Values{
		"expr":    {query},
		"min_rnk": {"1"},
		"max_rnk": {strconv.Itoa(limit)},
		"fmt":     {"json"},
	}

	reqURL := ctgovAPIBase + "?" + params.Encode()
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

	var cr ctgovResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, malformed(s.Name(), fmt.Errorf("parsing ClinicalTrials.gov response: %w", err))
	}

	var results []types.ResearchResult
	for _, wrapper := range cr.FullStudiesResponse.FullStudies {
		r, err := parseClinicalTrial(wrapper.Study)
		if err != nil {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// parseClinicalTrial normalizes one study. Studies without an NCT ID are
// rejected.
func parseClinicalTrial(study ctgovStudy) (types.ResearchResult, error) {
	ps := study.ProtocolSection
	nctID := ps.IdentificationModule.NCTID
	if nctID == "" {
		return types.ResearchResult{}, fmt.Errorf("study missing NCT ID")
	}

	var authors []string
	var investigators []map[string]any
	for _, official := range ps.ContactsLocationsModule.OverallOfficialList.OverallOfficial {
		if official.Name == "" {
			continue
		}
		authors = append(authors, official.Name)
		investigators = append(investigators, map[string]any{
			"name":        official.Name,
			"role":        official.Role,
			"affiliation": official.Affiliation,
			"is_pi":       strings.Contains(strings.ToLower(official.Role), "principal investigator"),
		})
	}

	return types.ResearchResult{
		Source:    types.SourceClinicalTrials,
		SourceKey: nctID,
		Title:     ps.IdentificationModule.BriefTitle,
		Abstract:  ps.DescriptionModule.BriefSummary.Text,
		Year:      yearFromDate(ps.StatusModule.StartDateStruct.StartDate),
		Authors:   authors,
		URL:       "https://clinicaltrials.gov/ct2/show/" + nctID,
		Extra: map[string]any{
			"status":        ps.StatusModule.OverallStatus,
			"conditions":    ps.ConditionsModule.ConditionList.Condition,
			"investigators": investigators,
			"phase":         ps.DesignModule.PhaseList.Phase,
		},
	}, nil
}

// yearFromDate extracts a leading 4-digit year from registry date strings
// such as "2021-03-15" or "March 2021".
func yearFromDate(date string) int {
	if len(date) >= 4 {
		if y, err := strconv.Atoi(date[:4]); err == nil {
			return y
		}
	}
	if idx := strings.LastIndex(date, " "); idx >= 0 {
		if y, err := strconv.Atoi(date[idx+1:]); err == nil {
			return y
		}
	}
	return 0
}

// ClinicalTrials.gov full-studies JSON structures.
type ctgovResponse struct {
	FullStudiesResponse struct {
		FullStudies []struct {
			Study ctgovStudy `json:"Study"`
		} `json:"FullStudies"`
	} `json:"FullStudiesResponse"`
}

type ctgovStudy struct {
	ProtocolSection struct {
		IdentificationModule struct {
			NCTID      string `json:"NCTId"`
			BriefTitle string `json:"BriefTitle"`
		} `json:"IdentificationModule"`
		DescriptionModule struct {
			BriefSummary struct {
				Text string `json:"BriefSummaryText"`
			} `json:"BriefSummary"`
		} `json:"DescriptionModule"`
		StatusModule struct {
			OverallStatus   string `json:"OverallStatus"`
			StartDateStruct struct {
				StartDate string `json:"StartDate"`
			} `json:"StartDateStruct"`
		} `json:"StatusModule"`
		ConditionsModule struct {
			ConditionList struct {
				Condition []string `json:"Condition"`
			} `json:"ConditionList"`
		} `json:"ConditionsModule"`
		ContactsLocationsModule struct {
			OverallOfficialList struct {
				OverallOfficial []struct {
					Name        string `json:"OverallOfficialName"`
					Role        string `json:"OverallOfficialRole"`
					Affiliation string `json:"OverallOfficialAffiliation"`
				} `json:"OverallOfficial"`
			} `json:"OverallOfficialList"`
		} `json:"ContactsLocationsModule"`
		DesignModule struct {
			PhaseList struct {
				Phase []string `json:"Phase"`
			} `json:"PhaseList"`
		} `json:"DesignModule"`
	} `json:"ProtocolSection"`
}
