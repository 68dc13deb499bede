// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const openAlexResponseJSON = `{
  "results": [
    {
      "id": "https://openalex.org/W2741809807",
      "title": "Drug-Coated Balloons in Below-the-Knee Disease",
      "doi": "https://doi.org/10.1056/NEJMoa1234567",
      "publication_year": 2022,
      "cited_by_count": 150,
      "authorships": [
        {
          "author": {"id": "https://openalex.org/A1", "display_name": "Sarah Johnson"},
          "institutions": [
            {"id": "https://openalex.org/I1", "display_name": "Stanford University"},
            {"id": "https://openalex.org/I1", "display_name": "Stanford University"}
          ]
        }
      ],
      "concepts": [
        {"display_name": "Angioplasty", "score": 0.8},
        {"display_name": "Medicine", "score": 0.2}
      ],
      "abstract_inverted_index": {"balloons": [1], "Drug-coated": [0], "work": [2]}
    },
    {
      "id": "",
      "title": "Work with no identifier"
    }
  ]
}`

func TestOpenAlexSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("search") != "below-the-knee disease" {
			t.Errorf("search = %q", q.Get("search"))
		}
		if q.Get("mailto") != "dev@example.org" {
			t.Errorf("mailto = %q", q.Get("mailto"))
		}
		fmt.Fprint(w, openAlexResponseJSON)
	}))
	defer srv.Close()

	orig := openAlexAPIBase
	openAlexAPIBase = srv.URL
	defer func() { openAlexAPIBase = orig }()

	s := &OpenAlex{Client: srv.Client(), Email: "dev@example.org", UserAgent: "test/0.1"}
	results, err := s.Search(context.Background(), "below-the-knee disease", 25)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1 (ID-less work skipped)", len(results))
	}

	r := results[0]
	if r.SourceKey != "W2741809807" {
		t.Errorf("SourceKey = %q, want W2741809807", r.SourceKey)
	}
	if r.Abstract != "Drug-coated balloons work" {
		t.Errorf("Abstract = %q", r.Abstract)
	}
	if r.Extra["citation_count"] != 150 {
		t.Errorf("citation_count = %v", r.Extra["citation_count"])
	}
	if r.Extra["doi"] != "10.1056/NEJMoa1234567" {
		t.Errorf("doi = %v", r.Extra["doi"])
	}
	insts, _ := r.Extra["institutions"].([]string)
	if len(insts) != 1 || insts[0] != "Stanford University" {
		t.Errorf("institutions = %v, want deduplicated single entry", insts)
	}
	concepts, _ := r.Extra["concepts"].([]string)
	if len(concepts) != 1 || concepts[0] != "Angioplasty" {
		t.Errorf("concepts = %v, want only scores above 0.3", concepts)
	}
}

func TestReconstructAbstract(t *testing.T) {
	tests := []struct {
		name  string
		index map[string][]int
		want  string
	}{
		{"empty", nil, ""},
		{
			"ordered",
			map[string][]int{"ischemia": []int{2}, "limb": []int{1}, "Critical": []int{0}},
			"Critical limb ischemia",
		},
		{
			"repeated word",
			map[string][]int{"very": []int{1, 2}, "A": []int{0}, "study": []int{3}},
			"A very very study",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reconstructAbstract(tt.index); got != tt.want {
				t.Errorf("reconstructAbstract() = %q, want %q", got, tt.want)
			}
		})
	}
}
