// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

// ResultFile is the on-disk representation of an aggregation run. A saved
// run can be reloaded later without re-querying the external APIs.
type ResultFile struct {
	Query     string                  `yaml:"query"`
	Timestamp time.Time               `yaml:"timestamp"`
	Results   types.AggregatedResults `yaml:"results"`
}

// WriteResultFile saves an aggregation envelope to a YAML file.
func WriteResultFile(path string, agg types.AggregatedResults) error {
	rf := ResultFile{
		Query:     agg.Query,
		Timestamp: time.Now(),
		Results:   agg,
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved aggregation run from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}
