// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		source string
		want   types.Category
		ok     bool
	}{
		{"pubmed", types.CategoryPublications, true},
		{"openalex", types.CategoryPublications, true},
		{"crossref", types.CategoryPublications, true},
		{"clinical_trials", types.CategoryClinicalTrials, true},
		{"nih_reporter", types.CategoryGrants, true},
		{"scopus", "", false},
	}
	for _, tt := range tests {
		got, ok := CategoryOf(tt.source)
		if got != tt.want || ok != tt.ok {
			t.Errorf("CategoryOf(%q) = (%q, %v), want (%q, %v)", tt.source, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNamesSorted(t *testing.T) {
	want := []string{"clinical_trials", "crossref", "nih_reporter", "openalex", "pubmed"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestAllCoversEveryCategory(t *testing.T) {
	registry := All(http.DefaultClient, types.ResearchConfig{})
	if len(registry) != 5 {
		t.Fatalf("len(registry) = %d, want 5", len(registry))
	}
	for name, src := range registry {
		if src.Name() != name {
			t.Errorf("registry key %q holds source named %q", name, src.Name())
		}
		if _, ok := CategoryOf(name); !ok {
			t.Errorf("source %q has no category", name)
		}
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		limit, def, max, want int
	}{
		{0, 25, 200, 25},
		{-3, 25, 200, 25},
		{50, 25, 200, 50},
		{500, 25, 200, 200},
		{500, 25, 100, 100},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.limit, tt.def, tt.max); got != tt.want {
			t.Errorf("clampLimit(%d, %d, %d) = %d, want %d", tt.limit, tt.def, tt.max, got, tt.want)
		}
	}
}
