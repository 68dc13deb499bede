// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matching

import (
	"fmt"
	"strings"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

// SyntheticAbstract builds the short abstract-like text submitted to
// semantic retrieval: condition, anatomy, failed prior interventions, care
// goals, and the top three keywords, joined into sentences.
func SyntheticAbstract(c types.CaseDescription) string {
	parts := []string{
		fmt.Sprintf("Adult patient presenting with %s", c.Condition.Text),
	}

	site := c.Anatomy.Site
	laterality := c.Anatomy.Laterality
	switch {
	case site != "" && site != "unspecified" && laterality != "" && laterality != "unspecified":
		parts = append(parts, fmt.Sprintf("of the %s %s", laterality, site))
	case site != "" && site != "unspecified":
		parts = append(parts, fmt.Sprintf("of the %s", site))
	}

	var failed []string
	for _, intervention := range c.PriorInterventions {
		if intervention.Status == "failed" {
			failed = append(failed, intervention.Name)
		}
	}
	if len(failed) > 0 {
		parts = append(parts, fmt.Sprintf("Prior %s was unsuccessful", strings.Join(failed, ", ")))
	}

	if len(c.Goals) > 0 {
		parts = append(parts, "Goal: "+strings.Join(c.Goals, ", "))
	}

	keywords := c.Keywords
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	if len(keywords) > 0 {
		parts = append(parts, "Consider "+strings.Join(keywords, ", "))
	}

	return strings.Join(parts, ". ") + "."
}
