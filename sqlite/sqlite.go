// Package sqlite caches search items and build history in SQLite.
//
// The cache is disposable: every row can be recomputed by sectioning the
// page again. When the schema changes the tables are dropped and rebuilt
// instead of migrated.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// schemaVersion is stored in PRAGMA user_version. Bump it whenever the
// tables below change.
const schemaVersion = 2

const schema = `
	CREATE TABLE IF NOT EXISTS pages (
		site TEXT NOT NULL,
		path TEXT NOT NULL,
		hash TEXT NOT NULL,
		items TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (site, path)
	);

	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		site TEXT NOT NULL,
		pages INTEGER NOT NULL DEFAULT 0,
		items INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0,
		cached INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_builds_site_created_at ON builds(site, created_at);
`

// DB is the cache database.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a DB stored at path. Use ":memory:" for a throwaway cache.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open creates the database file and its directory if needed and brings
// the schema up to date.
func (db *DB) Open() error {
	inMemory := db.path == ":memory:"
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(db.path), 0755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection serializes the concurrent SaveItems calls of a
	// build; an in-memory database also lives only as long as it.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if !inMemory {
		// Another build or watcher may hold the file. WAL lets it read while
		// this process writes, and losing the last commits on power loss
		// only costs a re-sectioning.
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL", "PRAGMA synchronous = NORMAL")
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	db.db = conn
	if err := db.migrate(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// migrate creates the tables, discarding the contents of a cache written
// with another schema version.
func (db *DB) migrate() error {
	var version int
	if err := db.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	if version == schemaVersion {
		_, err := db.db.Exec(schema)
		return err
	}

	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DROP TABLE IF EXISTS pages",
		"DROP TABLE IF EXISTS builds",
		schema,
		fmt.Sprintf("PRAGMA user_version = %d", schemaVersion),
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return tx.Commit()
}
