// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

// FormatTable writes the aggregated envelope as a human-readable table,
// one section per non-empty bucket.
func FormatTable(agg types.AggregatedResults, w io.Writer) {
	if agg.TotalResults == 0 {
		fmt.Fprintln(w, "No results found.")
	}

	writeBucket(w, "Publications", agg.Publications)
	writeBucket(w, "Clinical trials", agg.ClinicalTrials)
	writeBucket(w, "Grants", agg.Grants)

	fmt.Fprintf(w, "\n%d results from %s in %dms\n",
		agg.TotalResults, strings.Join(agg.SourcesQueried, ", "), agg.ExecutionTimeMS)
	for _, e := range agg.Errors {
		fmt.Fprintf(w, "error: %s\n", e)
	}
}

func writeBucket(w io.Writer, heading string, results []types.ResearchResult) {
	if len(results) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s\n", heading)
	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %-6s  %s\n",
		"Rank", "Title", "Authors", "Year", "Score", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range results {
		title := truncate(r.Title, 60)
		year := ""
		if r.Year > 0 {
			year = fmt.Sprintf("%d", r.Year)
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %-6.1f  %s\n",
			i+1, title, formatAuthors(r.Authors), year, r.RelevanceScore, r.Source)
	}
}

// FormatJSON writes the aggregated envelope as indented JSON.
func FormatJSON(agg types.AggregatedResults, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(agg)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
