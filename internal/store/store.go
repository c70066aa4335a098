// Package store persists requirement results in SQLite, keyed by
// (project, component, requirement name).
//
// The lifecycle is clear-then-recreate: the sync orchestrator deletes a
// component's rows before inserting fresh ones, so no stale instance
// survives a definition change. The store itself stays a thin keyed CRUD
// layer; ordering and merge semantics live in the engine.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gantryio/gantry/internal/model"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// DefaultFilename is the database file created under the managed
// project's gantry data directory.
const DefaultFilename = "requirements.db"

// Store is the requirement persistence layer backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the requirement database at dbPath,
// applies the connection pragmas, and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// SQLite performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS requirements (
			project_id   TEXT NOT NULL,
			component_id TEXT NOT NULL,
			name         TEXT NOT NULL,
			category     TEXT NOT NULL,
			checker      TEXT NOT NULL,
			description  TEXT,
			score        REAL    NOT NULL,
			satisfied    INTEGER NOT NULL,
			details      TEXT,
			checked_at   TEXT NOT NULL,
			PRIMARY KEY (project_id, component_id, name)
		);

		CREATE INDEX IF NOT EXISTS idx_req_component ON requirements(project_id, component_id);
		CREATE INDEX IF NOT EXISTS idx_req_name      ON requirements(project_id, name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Create inserts a requirement row, replacing any existing row for the
// same (project, component, name) key.
func (s *Store) Create(ctx context.Context, projectID string, r model.Requirement) error {
	var details any
	if len(r.Details) > 0 {
		data, err := json.Marshal(r.Details)
		if err != nil {
			return fmt.Errorf("store: marshal details for %s/%s: %w", r.ComponentID, r.Name, err)
		}
		details = string(data)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO requirements
			(project_id, component_id, name, category, checker, description, score, satisfied, details, checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id, component_id, name) DO UPDATE SET
			category = excluded.category,
			checker = excluded.checker,
			description = excluded.description,
			score = excluded.score,
			satisfied = excluded.satisfied,
			details = excluded.details,
			checked_at = excluded.checked_at`,
		projectID, r.ComponentID, r.Name, string(r.Category), string(r.Checker),
		r.Description, r.Score, boolToInt(r.Satisfied), details,
		r.CheckedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store: create requirement %s/%s: %w", r.ComponentID, r.Name, err)
	}
	return nil
}

// ClearForComponent deletes every requirement row for one component.
func (s *Store) ClearForComponent(ctx context.Context, projectID, componentID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM requirements WHERE project_id = ? AND component_id = ?`,
		projectID, componentID,
	)
	if err != nil {
		return fmt.Errorf("store: clear requirements for %s: %w", componentID, err)
	}
	return nil
}

// ClearByNames deletes the named requirements for the given components in
// one transaction — the delete-by-key-set half of clear-then-recreate for
// the relational pass. Empty inputs are a no-op.
func (s *Store) ClearByNames(ctx context.Context, projectID string, componentIDs, names []string) error {
	if len(componentIDs) == 0 || len(names) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`DELETE FROM requirements WHERE project_id = ? AND component_id IN (%s) AND name IN (%s)`,
		placeholders(len(componentIDs)), placeholders(len(names)),
	)

	args := make([]any, 0, 1+len(componentIDs)+len(names))
	args = append(args, projectID)
	for _, id := range componentIDs {
		args = append(args, id)
	}
	for _, n := range names {
		args = append(args, n)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("store: clear requirements by name: %w", err)
	}
	return nil
}

// ListForComponent returns one component's persisted requirements in
// insertion order.
func (s *Store) ListForComponent(ctx context.Context, projectID, componentID string) ([]model.Requirement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT component_id, name, category, checker, description, score, satisfied, details, checked_at
		FROM requirements
		WHERE project_id = ? AND component_id = ?
		ORDER BY rowid`,
		projectID, componentID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list requirements for %s: %w", componentID, err)
	}
	defer rows.Close()
	return scanRequirements(rows)
}

// ListForProject returns all persisted requirements for a project, grouped
// by component id.
func (s *Store) ListForProject(ctx context.Context, projectID string) (map[string][]model.Requirement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT component_id, name, category, checker, description, score, satisfied, details, checked_at
		FROM requirements
		WHERE project_id = ?
		ORDER BY component_id, rowid`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list requirements: %w", err)
	}
	defer rows.Close()

	reqs, err := scanRequirements(rows)
	if err != nil {
		return nil, err
	}

	byComponent := make(map[string][]model.Requirement)
	for _, r := range reqs {
		byComponent[r.ComponentID] = append(byComponent[r.ComponentID], r)
	}
	return byComponent, nil
}

func scanRequirements(rows *sql.Rows) ([]model.Requirement, error) {
	var out []model.Requirement
	for rows.Next() {
		var r model.Requirement
		var category, checker, checkedAt string
		var description, details sql.NullString
		var satisfied int

		if err := rows.Scan(&r.ComponentID, &r.Name, &category, &checker,
			&description, &r.Score, &satisfied, &details, &checkedAt); err != nil {
			return nil, fmt.Errorf("store: scan requirement: %w", err)
		}

		r.Category = model.ArtifactCategory(category)
		r.Checker = model.CheckerKind(checker)
		r.Description = description.String
		r.Satisfied = satisfied != 0

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &r.Details); err != nil {
				return nil, fmt.Errorf("store: parse details for %s/%s: %w", r.ComponentID, r.Name, err)
			}
		}

		t, err := time.Parse(time.RFC3339Nano, checkedAt)
		if err != nil {
			return nil, fmt.Errorf("store: parse checked_at for %s/%s: %w", r.ComponentID, r.Name, err)
		}
		r.CheckedAt = t

		out = append(out, r)
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
