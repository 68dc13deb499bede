// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sgalonska/another-doctor-app/internal/research"
	"github.com/sgalonska/another-doctor-app/internal/sources"
	"github.com/sgalonska/another-doctor-app/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research [query]",
	Short: "Search the external research sources and aggregate results",
	Long: `Research fans a query out to the five external sources (PubMed, OpenAlex,
Crossref, ClinicalTrials.gov, NIH RePORTER) concurrently, buckets results
into publications, clinical trials, and grants, and ranks each bucket by
relevance. A failing source is reported in the envelope's error list while
the remaining sources' results are still returned.`,
	Args: cobra.ExactArgs(1),
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().Int("max-per-source", 0, "maximum results per source (1-200)")
	researchCmd.Flags().String("sources", "", "comma-separated subset of sources to query (default: all)")
	researchCmd.Flags().Bool("json", false, "output the envelope as JSON")
	researchCmd.Flags().String("out", "", "save the envelope to a YAML file")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	cfg := researchConfig()
	maxPerSource, _ := cmd.Flags().GetInt("max-per-source")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	outPath, _ := cmd.Flags().GetString("out")

	var include []string
	if list, _ := cmd.Flags().GetString("sources"); list != "" {
		for _, name := range strings.Split(list, ",") {
			include = append(include, strings.TrimSpace(name))
		}
	}

	client := &http.Client{Timeout: cfg.Timeout}
	svc := research.NewService(sources.All(client, cfg), cfg, os.Stderr)

	agg, err := svc.SearchAll(cmd.Context(), args[0], maxPerSource, include)
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := research.WriteResultFile(outPath, agg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved results to %s\n", outPath)
	}

	if jsonOutput {
		return research.FormatJSON(agg, os.Stdout)
	}
	research.FormatTable(agg, os.Stdout)
	return nil
}

// researchConfig assembles the research configuration from viper and
// loaded secrets.
func researchConfig() types.ResearchConfig {
	cfg := types.ResearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("research.timeout"),
			UserAgent: viper.GetString("research.user_agent"),
		},
		MaxPerSource:  viper.GetInt("research.max_per_source"),
		SourceTimeout: viper.GetDuration("research.source_timeout"),
		PubMedAPIKey:  secretDefault("pubmed-api-key", viper.GetString("research.pubmed_api_key")),
		CrossrefEmail: secretDefault("crossref-email", viper.GetString("research.crossref_email")),
		OpenAlexEmail: secretDefault("openalex-email", viper.GetString("research.openalex_email")),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "another-doctor/" + version
	}
	return cfg
}
