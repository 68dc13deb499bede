// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package directory is the specialist/institution lookup collaborator,
// backed by a local SQLite database. It answers two questions for the
// matching engine: which specialists are associated with a work, and how
// strong is a specialist's institution (publication, trial, and grant
// counts).
package directory

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sgalonska/another-doctor-app/pkg/types"
)

// Store manages the specialist directory SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the directory database at path and creates the
// schema if it does not exist. Use ":memory:" for an ephemeral store.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening directory database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS institutions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			pubs INTEGER NOT NULL DEFAULT 0,
			trials INTEGER NOT NULL DEFAULT 0,
			nih_grants INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS specialists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			specialty TEXT,
			institution_id TEXT NOT NULL REFERENCES institutions(id)
		)`,
		`CREATE TABLE IF NOT EXISTS work_authors (
			work_id TEXT NOT NULL,
			specialist_id TEXT NOT NULL REFERENCES specialists(id),
			PRIMARY KEY (work_id, specialist_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_work_authors_work_id ON work_authors(work_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SpecialistsForWorks maps each work ID to its associated specialists. The
// relation is many-to-many; works unknown to the directory simply have no
// entry in the returned map.
func (s *Store) SpecialistsForWorks(ctx context.Context, workIDs []string) (map[string][]string, error) {
	result := make(map[string][]string)
	if len(workIDs) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?,", len(workIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(workIDs))
	for i, id := range workIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT work_id, specialist_id FROM work_authors
		 WHERE work_id IN (`+placeholders+`)
		 ORDER BY work_id, specialist_id`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying work authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var workID, specialistID string
		if err := rows.Scan(&workID, &specialistID); err != nil {
			return nil, fmt.Errorf("scanning work author row: %w", err)
		}
		result[workID] = append(result[workID], specialistID)
	}
	return result, rows.Err()
}

// Specialist returns display metadata for a specialist.
func (s *Store) Specialist(ctx context.Context, id string) (types.Specialist, error) {
	var sp types.Specialist
	var specialty sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT s.id, s.name, s.specialty, i.name
		 FROM specialists s JOIN institutions i ON s.institution_id = i.id
		 WHERE s.id = ?`, id).Scan(&sp.ID, &sp.Name, &specialty, &sp.Institution)
	if err != nil {
		return sp, fmt.Errorf("querying specialist %s: %w", id, err)
	}
	sp.Specialty = specialty.String
	return sp, nil
}

// InstitutionMetrics returns the aggregate research counts of the
// specialist's institution.
func (s *Store) InstitutionMetrics(ctx context.Context, specialistID string) (types.InstitutionMetrics, error) {
	var m types.InstitutionMetrics

	err := s.db.QueryRowContext(ctx,
		`SELECT i.pubs, i.trials, i.nih_grants
		 FROM specialists s JOIN institutions i ON s.institution_id = i.id
		 WHERE s.id = ?`, specialistID).Scan(&m.Pubs, &m.Trials, &m.NIHGrants)
	if err != nil {
		return m, fmt.Errorf("querying institution metrics for %s: %w", specialistID, err)
	}
	return m, nil
}
