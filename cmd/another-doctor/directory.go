// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sgalonska/another-doctor-app/internal/directory"
)

var directoryCmd = &cobra.Command{
	Use:   "directory",
	Short: "Manage the local specialist directory database",
}

var directoryImportCmd = &cobra.Command{
	Use:   "import [seed-file]",
	Short: "Import institutions, specialists, and work links from a YAML seed file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDirectoryImport,
}

func init() {
	directoryImportCmd.Flags().String("db", "", "path to the directory database (default: matching.directory_path)")

	directoryCmd.AddCommand(directoryImportCmd)
	rootCmd.AddCommand(directoryCmd)
}

func runDirectoryImport(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("matching.directory_path")
	}
	if dbPath == "" {
		return fmt.Errorf("no directory database configured (set matching.directory_path or --db)")
	}

	store, err := directory.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Import(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d institutions, %d specialists, %d work links\n",
		summary.Institutions, summary.Specialists, summary.WorkLinks)
	return nil
}
