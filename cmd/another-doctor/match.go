// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sgalonska/another-doctor-app/internal/directory"
	"github.com/sgalonska/another-doctor-app/internal/matching"
	"github.com/sgalonska/another-doctor-app/internal/vectors"
	"github.com/sgalonska/another-doctor-app/pkg/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank specialists for a structured patient case",
	Long: `Match runs the four-stage pipeline over a case file: semantic candidate
retrieval against the vector service, symbolic filtering (year, MeSH terms,
geography), per-specialist aggregation through the directory database, and
score computation. Output is a ranked, evidence-backed list of specialists.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().String("case", "", "path to the YAML case file (required)")
	matchCmd.Flags().Int("max-results", 0, "maximum matches to return")
	matchCmd.Flags().Int("min-year", 0, "exclude works published before this year")
	matchCmd.Flags().String("mesh-terms", "", "comma-separated MeSH terms; candidates must share one")
	matchCmd.Flags().String("countries", "", "comma-separated country codes to allow")
	matchCmd.Flags().Bool("degraded", false, "use sample candidates if the vector service is down")
	matchCmd.Flags().Bool("json", false, "output matches as JSON")
	matchCmd.MarkFlagRequired("case")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	casePath, _ := cmd.Flags().GetString("case")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	caseDesc, err := matching.ReadCaseFile(casePath)
	if err != nil {
		return err
	}

	cfg := matchingConfig(cmd)
	if cfg.VectorServiceURL == "" {
		return fmt.Errorf("no vector service URL configured (set matching.vector_service_url)")
	}
	if cfg.DirectoryPath == "" {
		return fmt.Errorf("no directory database configured (set matching.directory_path)")
	}

	store, err := directory.NewStore(cfg.DirectoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	client := &vectors.Client{
		BaseURL:   cfg.VectorServiceURL,
		APIKey:    cfg.VectorAPIKey,
		UserAgent: cfg.UserAgent,
		HTTP:      &http.Client{Timeout: cfg.Timeout},
	}

	engine := matching.NewEngine(client, store, cfg, os.Stderr)
	matches, err := engine.FindMatches(cmd.Context(), caseDesc, matchFilters(cmd), maxResults)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	if len(matches) == 0 {
		fmt.Println("No matching specialists found.")
		return nil
	}
	for i, m := range matches {
		fmt.Printf("%d. %s — %s (%s)\n", i+1, m.Name, m.Institution, m.Specialty)
		fmt.Printf("   total %.1f (doctor %.1f, institution %.1f)\n", m.TotalScore, m.DoctorScore, m.InstitutionScore)
		fmt.Printf("   %s\n", m.Explanation)
		for _, ev := range m.Evidence {
			fmt.Printf("   - [%s] %s (%d)\n", ev.Type, ev.Title, ev.Year)
		}
	}
	return nil
}

// matchFilters builds the symbolic filters from command flags.
func matchFilters(cmd *cobra.Command) *types.MatchFilters {
	filters := &types.MatchFilters{}
	filters.MinYear, _ = cmd.Flags().GetInt("min-year")
	if list, _ := cmd.Flags().GetString("mesh-terms"); list != "" {
		filters.MeshTerms = splitList(list)
	}
	if list, _ := cmd.Flags().GetString("countries"); list != "" {
		filters.Countries = splitList(list)
	}
	return filters
}

func splitList(list string) []string {
	var out []string
	for _, v := range strings.Split(list, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// matchingConfig assembles the matching configuration from viper, loaded
// secrets, and flags.
func matchingConfig(cmd *cobra.Command) types.MatchingConfig {
	cfg := types.MatchingConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("matching.timeout"),
			UserAgent: viper.GetString("matching.user_agent"),
		},
		VectorServiceURL: viper.GetString("matching.vector_service_url"),
		VectorAPIKey:     secretDefault("vector-api-key", viper.GetString("matching.vector_api_key")),
		TopK:             viper.GetInt("matching.top_k"),
		ScoreThreshold:   viper.GetFloat64("matching.score_threshold"),
		MaxResults:       viper.GetInt("matching.max_results"),
		DirectoryPath:    viper.GetString("matching.directory_path"),
		DegradedMode:     viper.GetBool("matching.degraded_mode"),
	}
	if degraded, _ := cmd.Flags().GetBool("degraded"); degraded {
		cfg.DegradedMode = true
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "another-doctor/" + version
	}
	return cfg
}
