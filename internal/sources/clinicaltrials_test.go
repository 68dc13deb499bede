// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const ctgovResponseJSON = `{
  "FullStudiesResponse": {
    "FullStudies": [
      {
        "Study": {
          "ProtocolSection": {
            "IdentificationModule": {
              "NCTId": "NCT04123456",
              "BriefTitle": "Deep Venous Arterialization for No-Option CLI"
            },
            "DescriptionModule": {
              "BriefSummary": {"BriefSummaryText": "Feasibility study of DVA."}
            },
            "StatusModule": {
              "OverallStatus": "Recruiting",
              "StartDateStruct": {"StartDate": "March 2021"}
            },
            "ConditionsModule": {
              "ConditionList": {"Condition": ["Critical Limb Ischemia"]}
            },
            "ContactsLocationsModule": {
              "OverallOfficialList": {
                "OverallOfficial": [
                  {
                    "OverallOfficialName": "Sarah Johnson",
                    "OverallOfficialRole": "Principal Investigator",
                    "OverallOfficialAffiliation": "Stanford University"
                  },
                  {
                    "OverallOfficialName": "Michael Chen",
                    "OverallOfficialRole": "Study Chair",
                    "OverallOfficialAffiliation": "UCSF"
                  }
                ]
              }
            },
            "DesignModule": {"PhaseList": {"Phase": ["Phase 2"]}}
          }
        }
      },
      {
        "Study": {
          "ProtocolSection": {
            "IdentificationModule": {"NCTId": "", "BriefTitle": "No registry ID"}
          }
        }
      }
    ]
  }
}`

func TestClinicalTrialsSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("expr") != "critical limb ischemia" {
			t.Errorf("expr = %q", q.Get("expr"))
		}
		if q.Get("fmt") != "json" {
			t.Errorf("fmt = %q", q.Get("fmt"))
		}
		fmt.Fprint(w, ctgovResponseJSON)
	}))
	defer srv.Close()

	orig := ctgovAPIBase
	ctgovAPIBase = srv.URL
	defer func() { ctgovAPIBase = orig }()

	s := &ClinicalTrials{Client: srv.Client(), UserAgent: "test/0.1"}
	results, err := s.Search(context.Background(), "critical limb ischemia", 25)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1 (ID-less study skipped)", len(results))
	}

	r := results[0]
	if r.SourceKey != "NCT04123456" {
		t.Errorf("SourceKey = %q", r.SourceKey)
	}
	if r.Year != 2021 {
		t.Errorf("Year = %d, want 2021", r.Year)
	}
	if r.URL != "https://clinicaltrials.gov/ct2/show/NCT04123456" {
		t.Errorf("URL = %q", r.URL)
	}

	investigators, _ := r.Extra["investigators"].([]map[string]any)
	if len(investigators) != 2 {
		t.Fatalf("investigators = %v", investigators)
	}
	if investigators[0]["is_pi"] != true {
		t.Errorf("PI role not flagged: %v", investigators[0])
	}
	if investigators[1]["is_pi"] != false {
		t.Errorf("study chair flagged as PI: %v", investigators[1])
	}
}

func TestYearFromDate(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2021-03-15", 2021},
		{"March 2021", 2021},
		{"September 15, 2019", 2019},
		{"", 0},
		{"unknown", 0},
	}
	for _, tt := range tests {
		if got := yearFromDate(tt.date); got != tt.want {
			t.Errorf("yearFromDate(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}
}
