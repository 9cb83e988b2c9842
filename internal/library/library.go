// Package library is the local catalog of generated components: one
// SQLite database recording each completed generation with its exported
// artifact paths, so earlier work can be found and reused instead of
// regenerated.
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// ErrNotFound is returned when a component lookup matches nothing.
var ErrNotFound = errors.New("component not found in library")

// schema contains the DDL executed on first open. Using IF NOT EXISTS
// makes it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS components (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    family         TEXT NOT NULL,
    pin_count      INTEGER NOT NULL,
    footprint_path TEXT NOT NULL DEFAULT '',
    symbol_path    TEXT NOT NULL DEFAULT '',
    model_path     TEXT NOT NULL DEFAULT '',
    warnings       INTEGER NOT NULL DEFAULT 0,
    created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(name)
);

CREATE INDEX IF NOT EXISTS idx_components_family ON components(family);
`

// Record is one completed generation.
type Record struct {
	ID            string
	Name          string
	Family        string
	PinCount      int
	FootprintPath string
	SymbolPath    string
	ModelPath     string
	Warnings      int
	CreatedAt     time.Time
}

// Store is the component catalog backed by a local SQLite database in
// WAL mode.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the catalog at dbPath, enables WAL mode and a
// busy timeout, and creates the schema if it does not exist.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("library: open database: %w", err)
	}

	// One connection: SQLite has a single writer, and pooled connections
	// each needing their own PRAGMA setup only buy SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("library: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("library: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("library: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts a generation record, keyed by component name so a
// regenerated component replaces its previous entry.
func (s *Store) Save(ctx context.Context, r Record) error {
	const q = `
		INSERT INTO components (id, name, family, pin_count, footprint_path, symbol_path, model_path, warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			id = excluded.id,
			family = excluded.family,
			pin_count = excluded.pin_count,
			footprint_path = excluded.footprint_path,
			symbol_path = excluded.symbol_path,
			model_path = excluded.model_path,
			warnings = excluded.warnings,
			created_at = CURRENT_TIMESTAMP`
	if _, err := s.db.ExecContext(ctx, q,
		r.ID, r.Name, r.Family, r.PinCount,
		r.FootprintPath, r.SymbolPath, r.ModelPath, r.Warnings,
	); err != nil {
		return fmt.Errorf("library: save %q: %w", r.Name, err)
	}
	return nil
}

// Find returns the record for a component name.
func (s *Store) Find(ctx context.Context, name string) (*Record, error) {
	const q = `
		SELECT id, name, family, pin_count, footprint_path, symbol_path, model_path, warnings, created_at
		FROM components WHERE name = ?`
	r, err := scanRecord(s.db.QueryRowContext(ctx, q, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("library: %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("library: find %q: %w", name, err)
	}
	return r, nil
}

// List returns all records, optionally filtered by family, newest
// first with name as tiebreak so listings are stable.
func (s *Store) List(ctx context.Context, family string) ([]Record, error) {
	q := `
		SELECT id, name, family, pin_count, footprint_path, symbol_path, model_path, warnings, created_at
		FROM components`
	args := []any{}
	if family != "" {
		q += " WHERE family = ?"
		args = append(args, family)
	}
	q += " ORDER BY created_at DESC, name ASC"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("library: list: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("library: list: %w", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("library: list: %w", err)
	}
	return out, nil
}

// Delete removes a component by name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM components WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("library: delete %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("library: %q: %w", name, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.Name, &r.Family, &r.PinCount,
		&r.FootprintPath, &r.SymbolPath, &r.ModelPath, &r.Warnings, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
