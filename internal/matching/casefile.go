// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matching

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

// ReadCaseFile loads a structured case description from a YAML file. JSON
// case files parse as well since YAML is a superset.
func ReadCaseFile(path string) (types.CaseDescription, error) {
	var c types.CaseDescription

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading case file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parsing case file: %w", err)
	}
	if c.Condition.Text == "" {
		return c, fmt.Errorf("case file %s has no condition text", path)
	}
	if c.Urgency == "" {
		c.Urgency = types.UrgencyMedium
	}
	return c, nil
}
