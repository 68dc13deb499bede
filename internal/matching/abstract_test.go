// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matching

import (
	"testing"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

func TestSyntheticAbstract(t *testing.T) {
	c := types.CaseDescription{
		Condition: types.Condition{Text: "critical limb ischemia"},
		Anatomy:   types.Anatomy{Site: "lower extremity", Laterality: "left"},
		PriorInterventions: []types.PriorIntervention{
			{Name: "angioplasty", Status: "failed"},
			{Name: "stenting", Status: "completed"},
		},
		Goals:    []string{"limb salvage"},
		Keywords: []string{"CLI", "revascularization", "tibial", "extra", "more"},
	}

	got := SyntheticAbstract(c)
	want := "Adult patient presenting with critical limb ischemia. " +
		"of the left lower extremity. " +
		"Prior angioplasty was unsuccessful. " +
		"Goal: limb salvage. " +
		"Consider CLI, revascularization, tibial."
	if got != want {
		t.Errorf("SyntheticAbstract() =\n%q\nwant\n%q", got, want)
	}
}

func TestSyntheticAbstractMinimalCase(t *testing.T) {
	c := types.CaseDescription{Condition: types.Condition{Text: "chronic migraine"}}

	got := SyntheticAbstract(c)
	if got != "Adult patient presenting with chronic migraine." {
		t.Errorf("SyntheticAbstract() = %q", got)
	}
}

func TestSyntheticAbstractUnspecifiedAnatomy(t *testing.T) {
	c := types.CaseDescription{
		Condition: types.Condition{Text: "critical limb ischemia"},
		Anatomy:   types.Anatomy{Site: "unspecified", Laterality: "unspecified"},
	}

	got := SyntheticAbstract(c)
	if got != "Adult patient presenting with critical limb ischemia." {
		t.Errorf("unspecified anatomy leaked into abstract: %q", got)
	}
}

func TestSyntheticAbstractSiteOnly(t *testing.T) {
	c := types.CaseDescription{
		Condition: types.Condition{Text: "osteoarthritis"},
		Anatomy:   types.Anatomy{Site: "knee"},
	}

	got := SyntheticAbstract(c)
	if got != "Adult patient presenting with osteoarthritis. of the knee." {
		t.Errorf("SyntheticAbstract() = %q", got)
	}
}
