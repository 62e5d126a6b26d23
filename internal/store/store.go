package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("store: not found")

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    doc TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS progress (
    profile_id TEXT PRIMARY KEY,
    doc TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (profile_id) REFERENCES profiles(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS teacher_imports (
    profile_id TEXT NOT NULL,
    school TEXT NOT NULL,
    class_group TEXT NOT NULL,
    doc TEXT NOT NULL,
    imported_at TEXT NOT NULL,
    PRIMARY KEY (profile_id, school, class_group)
);

CREATE TABLE IF NOT EXISTS app_state (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Store wraps the SQLite database. Documents are stored as JSON text; the
// schema stays dumb so progress format changes never need a migration.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies pragmas and creates
// the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. MATEMAGICA_DB environment variable
// 2. $XDG_DATA_HOME/matemagica/matemagica.db
// 3. ~/.local/share/matemagica/matemagica.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MATEMAGICA_DB"); p != "" {
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "matemagica", "matemagica.db")
	return p, ensureDir(p)
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// SaveProfile upserts a profile identity document.
func (s *Store) SaveProfile(ctx context.Context, id string, doc []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, doc, created_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`,
		id, string(doc), nowISO())
	return err
}

// LoadProfile returns a profile identity document.
func (s *Store) LoadProfile(ctx context.Context, id string) ([]byte, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM profiles WHERE id = ?`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

// ListProfiles returns all profile identity documents, oldest first.
func (s *Store) ListProfiles(ctx context.Context) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM profiles ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs [][]byte
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, []byte(doc))
	}
	return docs, rows.Err()
}

// DeleteProfile removes a profile and, via the foreign key, its progress.
// The active-profile pointer is cleared when it pointed at the deleted row.
func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM app_state WHERE key = 'active_profile' AND value = ?`, id)
	return err
}

// SaveProgress upserts the progress document for a profile.
func (s *Store) SaveProgress(ctx context.Context, profileID string, doc []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO progress (profile_id, doc, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(profile_id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		profileID, string(doc), nowISO())
	return err
}

// LoadProgress returns the progress document for a profile.
func (s *Store) LoadProgress(ctx context.Context, profileID string) ([]byte, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM progress WHERE profile_id = ?`, profileID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

// SetActiveProfile records which profile the app opens with.
func (s *Store) SetActiveProfile(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value) VALUES ('active_profile', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, id)
	return err
}

// ActiveProfile returns the active profile ID, or ErrNotFound when none is set.
func (s *Store) ActiveProfile(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = 'active_profile'`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return id, err
}

// SaveTeacherImport stores a validated student export under its school and
// class group; re-importing the same student replaces the previous copy.
func (s *Store) SaveTeacherImport(ctx context.Context, profileID, school, classGroup string, doc []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO teacher_imports (profile_id, school, class_group, doc, imported_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(profile_id, school, class_group) DO UPDATE SET doc = excluded.doc, imported_at = excluded.imported_at`,
		profileID, school, classGroup, string(doc), nowISO())
	return err
}

// ListTeacherImports returns the stored export documents for one class.
func (s *Store) ListTeacherImports(ctx context.Context, school, classGroup string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc FROM teacher_imports WHERE school = ? AND class_group = ? ORDER BY profile_id`,
		school, classGroup)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs [][]byte
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, []byte(doc))
	}
	return docs, rows.Err()
}

// ClassGroup names one imported school/class pairing.
type ClassGroup struct {
	School     string
	ClassGroup string
	Students   int
}

// ListClassGroups returns the distinct school/class pairs with import counts.
func (s *Store) ListClassGroups(ctx context.Context) ([]ClassGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT school, class_group, COUNT(*) FROM teacher_imports
		GROUP BY school, class_group ORDER BY school, class_group`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []ClassGroup
	for rows.Next() {
		var g ClassGroup
		if err := rows.Scan(&g.School, &g.ClassGroup, &g.Students); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Reset drops all rows from every table. Used by the reset command.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"teacher_imports", "progress", "profiles", "app_state"} {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}
