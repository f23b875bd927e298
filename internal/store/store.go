// Package store provides the SQLite-backed repair journal: one row per
// repaired source and one per diagram extracted from it, so the failure modes
// of a generator can be reviewed later.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/julianshen/mermaidfix/internal/output"
)

// Run is one journaled repair of a source.
type Run struct {
	ID           string
	Source       string
	DiagramCount int
	InvalidCount int
	DurationMs   int64
	Error        string
	CreatedAt    time.Time
}

// RunDiagram is one diagram recorded for a run.
type RunDiagram struct {
	RunID   string
	Key     string
	Family  string
	Content string
	Valid   bool
	Issues  []string
}

// FamilyStat aggregates journaled diagrams of one family.
type FamilyStat struct {
	Family  string
	Total   int
	Invalid int
}

// Store wraps a SQLite database for journal persistence.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) a SQLite database at dbPath and ensures
// all required tables exist. Use ":memory:" for an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS runs (
			id            TEXT PRIMARY KEY,
			source        TEXT NOT NULL,
			diagram_count INTEGER NOT NULL,
			invalid_count INTEGER NOT NULL,
			duration_ms   INTEGER NOT NULL,
			error         TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE TABLE IF NOT EXISTS run_diagrams (
			run_id   TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			key      TEXT NOT NULL,
			family   TEXT NOT NULL,
			content  TEXT NOT NULL,
			valid    INTEGER NOT NULL,
			issues   TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (run_id, position)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

// RecordReport journals report under a new run id, which is also written to
// report.RunID.
func (s *Store) RecordReport(report *output.Report) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, source, diagram_count, invalid_count, duration_ms, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, report.Source, len(report.Diagrams), report.Invalid(), report.DurationMs, report.Error,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, d := range report.Diagrams {
		issues, err := json.Marshal(nonNil(d.Issues))
		if err != nil {
			return "", fmt.Errorf("encode issues: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO run_diagrams (run_id, position, key, family, content, valid, issues)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, i, d.Key, d.Family, d.Content, d.Valid, string(issues),
		)
		if err != nil {
			return "", fmt.Errorf("insert diagram %s: %w", d.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	report.RunID = id
	return id, nil
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT id, source, diagram_count, invalid_count, duration_ms, error, created_at
		 FROM runs ORDER BY rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Source, &r.DiagramCount, &r.InvalidCount, &r.DurationMs, &r.Error, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun retrieves a run and its diagrams by id.
// Returns nil if the run is not found.
func (s *Store) GetRun(id string) (*Run, []RunDiagram, error) {
	var r Run
	err := s.db.QueryRow(
		`SELECT id, source, diagram_count, invalid_count, duration_ms, error, created_at
		 FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.Source, &r.DiagramCount, &r.InvalidCount, &r.DurationMs, &r.Error, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get run: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT run_id, key, family, content, valid, issues
		 FROM run_diagrams WHERE run_id = ? ORDER BY position`, id,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("list run diagrams: %w", err)
	}
	defer rows.Close()

	var diagrams []RunDiagram
	for rows.Next() {
		var (
			d      RunDiagram
			issues string
		)
		if err := rows.Scan(&d.RunID, &d.Key, &d.Family, &d.Content, &d.Valid, &issues); err != nil {
			return nil, nil, fmt.Errorf("scan run diagram: %w", err)
		}
		if err := json.Unmarshal([]byte(issues), &d.Issues); err != nil {
			return nil, nil, fmt.Errorf("decode issues: %w", err)
		}
		diagrams = append(diagrams, d)
	}
	return &r, diagrams, rows.Err()
}

// FamilyStats counts journaled diagrams per family, most frequent first.
func (s *Store) FamilyStats() ([]FamilyStat, error) {
	rows, err := s.db.Query(
		`SELECT family, COUNT(*), SUM(CASE WHEN valid THEN 0 ELSE 1 END)
		 FROM run_diagrams GROUP BY family ORDER BY COUNT(*) DESC, family`,
	)
	if err != nil {
		return nil, fmt.Errorf("family stats: %w", err)
	}
	defer rows.Close()

	var stats []FamilyStat
	for rows.Next() {
		var st FamilyStat
		if err := rows.Scan(&st.Family, &st.Total, &st.Invalid); err != nil {
			return nil, fmt.Errorf("scan family stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// DeleteRun removes a run and its diagrams.
func (s *Store) DeleteRun(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM run_diagrams WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("delete run diagrams: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM runs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return tx.Commit()
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
