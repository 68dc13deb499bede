// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matching

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

const caseYAML = `condition:
  text: critical limb ischemia
  icd10: I70.25
anatomy:
  site: lower extremity
  laterality: left
prior_interventions:
  - name: angioplasty
    status: failed
goals:
  - limb salvage
keywords:
  - CLI
`

func writeCaseFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCaseFile(t *testing.T) {
	c, err := ReadCaseFile(writeCaseFile(t, caseYAML))
	if err != nil {
		t.Fatalf("ReadCaseFile() error: %v", err)
	}
	if c.Condition.Text != "critical limb ischemia" {
		t.Errorf("Condition.Text = %q", c.Condition.Text)
	}
	if c.Condition.ICD10 != "I70.25" {
		t.Errorf("Condition.ICD10 = %q", c.Condition.ICD10)
	}
	if c.Anatomy.Laterality != "left" {
		t.Errorf("Anatomy.Laterality = %q", c.Anatomy.Laterality)
	}
	if len(c.PriorInterventions) != 1 || c.PriorInterventions[0].Status != "failed" {
		t.Errorf("PriorInterventions = %+v", c.PriorInterventions)
	}
	if c.Urgency != types.UrgencyMedium {
		t.Errorf("Urgency = %q, want default medium", c.Urgency)
	}
}

func TestReadCaseFileNoCondition(t *testing.T) {
	if _, err := ReadCaseFile(writeCaseFile(t, "goals:\n  - limb salvage\n")); err == nil {
		t.Fatal("ReadCaseFile() without condition text returned nil error")
	}
}

func TestReadCaseFileMissing(t *testing.T) {
	if _, err := ReadCaseFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("ReadCaseFile() on missing file returned nil error")
	}
}
