// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package directory

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// SeedFile is the YAML document format for populating the directory.
type SeedFile struct {
	Institutions []SeedInstitution `yaml:"institutions"`
	Specialists  []SeedSpecialist  `yaml:"specialists"`
	Works        []SeedWork        `yaml:"works"`
}

// SeedInstitution declares one institution and its aggregate counts.
type SeedInstitution struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Pubs      int    `yaml:"pubs"`
	Trials    int    `yaml:"trials"`
	NIHGrants int    `yaml:"nih_grants"`
}

// SeedSpecialist declares one specialist and their institution.
type SeedSpecialist struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Specialty     string `yaml:"specialty"`
	InstitutionID string `yaml:"institution_id"`
}

// SeedWork links one work to its associated specialists.
type SeedWork struct {
	WorkID        string   `yaml:"work_id"`
	SpecialistIDs []string `yaml:"specialist_ids"`
}

// ImportSummary holds counts from a seed import run.
type ImportSummary struct {
	Institutions int
	Specialists  int
	WorkLinks    int
}

// Import reads a YAML seed file and populates the directory inside one
// transaction. Existing rows with the same IDs are replaced.
func (s *Store) Import(ctx context.Context, path string) (ImportSummary, error) {
	var summary ImportSummary

	data, err := os.ReadFile(path)
	if err != nil {
		return summary, fmt.Errorf("reading seed file: %w", err)
	}
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return summary, fmt.Errorf("parsing seed file: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("starting import transaction: %w", err)
	}
	defer tx.Rollback()

	for _, inst := range seed.Institutions {
		if inst.ID == "" {
			return summary, fmt.Errorf("institution %q has no id", inst.Name)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO institutions (id, name, pubs, trials, nih_grants) VALUES (?, ?, ?, ?, ?)`,
			inst.ID, inst.Name, inst.Pubs, inst.Trials, inst.NIHGrants); err != nil {
			return summary, fmt.Errorf("inserting institution %s: %w", inst.ID, err)
		}
		summary.Institutions++
	}

	for _, sp := range seed.Specialists {
		if sp.ID == "" || sp.InstitutionID == "" {
			return summary, fmt.Errorf("specialist %q needs id and institution_id", sp.Name)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO specialists (id, name, specialty, institution_id) VALUES (?, ?, ?, ?)`,
			sp.ID, sp.Name, sp.Specialty, sp.InstitutionID); err != nil {
			return summary, fmt.Errorf("inserting specialist %s: %w", sp.ID, err)
		}
		summary.Specialists++
	}

	for _, work := range seed.Works {
		for _, specialistID := range work.SpecialistIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO work_authors (work_id, specialist_id) VALUES (?, ?)`,
				work.WorkID, specialistID); err != nil {
				return summary, fmt.Errorf("linking work %s to %s: %w", work.WorkID, specialistID, err)
			}
			summary.WorkLinks++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing import: %w", err)
	}
	return summary, nil
}
