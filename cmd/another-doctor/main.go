// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the another-doctor CLI: research
// aggregation across external medical APIs and specialist matching for
// structured patient cases.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sgalonska/another-doctor-app/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when non-empty, otherwise the secret
// value for key if one was loaded.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the another-doctor CLI.
var rootCmd = &cobra.Command{
	Use:   "another-doctor",
	Short: "Research aggregation and specialist matching for patient cases",
	Long: `another-doctor aggregates biomedical research from five external sources
(PubMed, OpenAlex, Crossref, ClinicalTrials.gov, NIH RePORTER) and matches
structured patient cases to specialists through a semantic retrieval,
filtering, and scoring pipeline.

Use the research command to run an aggregated search, match to rank
specialists for a case, and directory to manage the local specialist
database.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./another-doctor.yaml or ~/.config/another-doctor/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("another-doctor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "another-doctor"))
		}
	}

	viper.SetEnvPrefix("ANOTHER_DOCTOR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
