// Package sqlite stores harvested pages, extracted records, the extraction
// log and per-host health in a single SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// pragmas applied to every connection.
const pragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// migrations run in order. PRAGMA user_version holds the number applied,
// so a database created by an older build is brought forward on Open.
var migrations = []string{
	`
	CREATE TABLE raw_pages (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL UNIQUE,
		host TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		content_hash TEXT NOT NULL DEFAULT '',
		fetched_at TEXT NOT NULL
	);

	CREATE TABLE records (
		id TEXT PRIMARY KEY,
		page_id TEXT NOT NULL UNIQUE REFERENCES raw_pages(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		acronym TEXT NOT NULL DEFAULT '-',
		institution_name TEXT NOT NULL DEFAULT '-',
		program_name TEXT NOT NULL DEFAULT '-',
		pdf_link TEXT NOT NULL DEFAULT '-',
		strategy TEXT NOT NULL DEFAULT '',
		extracted_at TEXT NOT NULL
	);

	CREATE TABLE extraction_logs (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE source_health (
		host TEXT PRIMARY KEY,
		successes INTEGER NOT NULL DEFAULT 0,
		failures INTEGER NOT NULL DEFAULT 0,
		last_status TEXT NOT NULL DEFAULT '',
		last_error TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	);
	`,
	`
	CREATE INDEX idx_raw_pages_host ON raw_pages(host);
	CREATE INDEX idx_records_acronym ON records(acronym COLLATE NOCASE);
	CREATE INDEX idx_extraction_logs_url ON extraction_logs(url, created_at);
	`,
}

// DB is a handle to the repometa database.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for path. Use ":memory:" for a throwaway database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects and migrates the schema to the latest version.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", dsn(db.path))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// One connection serializes writers and keeps ":memory:" a single
	// database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database %s: %w", db.path, err)
	}
	db.db = conn

	if err := db.migrate(context.Background()); err != nil {
		conn.Close()
		db.db = nil
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// dsn builds the driver name for path. File databases use WAL so reads
// from the CLI do not block a running harvest.
func dsn(path string) string {
	if path == ":memory:" {
		return "file::memory:?" + pragmas
	}
	return "file:" + path + "?" + pragmas + "&_pragma=journal_mode(wal)"
}

func (db *DB) migrate(ctx context.Context) error {
	version, err := db.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	for v := version; v < len(migrations); v++ {
		tx, err := db.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, migrations[v]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// SchemaVersion returns the number of migrations applied.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := db.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}

// Close closes the database.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// QueryRowContext executes a query that returns at most one row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that returns no rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}
