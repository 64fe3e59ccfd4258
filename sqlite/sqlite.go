// Package sqlite provides SQLite-based storage for folio scrape records.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	// This also keeps a ":memory:" database alive across queries.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait up to 5 seconds on lock contention instead of failing at once.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Children are cascade-deleted with their record.
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
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

// BeginTx starts a transaction. With a single connection, every statement
// issued before Commit or Rollback must go through the returned Tx.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scrape_records (
			id TEXT PRIMARY KEY,
			url TEXT NOT NULL UNIQUE,
			platform TEXT NOT NULL DEFAULT 'generic',
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS content_details (
			record_id TEXT PRIMARY KEY REFERENCES scrape_records(id) ON DELETE CASCADE,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			descriptions TEXT NOT NULL DEFAULT '[]',
			metadata TEXT NOT NULL DEFAULT '{}',
			blocks TEXT NOT NULL DEFAULT '[]',
			sections TEXT NOT NULL DEFAULT '[]',
			article TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS images (
			record_id TEXT NOT NULL REFERENCES scrape_records(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			src TEXT NOT NULL,
			alt TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS videos (
			record_id TEXT NOT NULL REFERENCES scrape_records(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			type TEXT NOT NULL,
			src TEXT NOT NULL,
			poster TEXT NOT NULL DEFAULT '',
			allow_fullscreen INTEGER NOT NULL DEFAULT 0,
			sandbox TEXT NOT NULL DEFAULT '',
			UNIQUE (record_id, type, src)
		);

		CREATE TABLE IF NOT EXISTS social_links (
			record_id TEXT NOT NULL REFERENCES scrape_records(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			platform TEXT NOT NULL DEFAULT '',
			username TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL,
			kind TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS contact_infos (
			record_id TEXT NOT NULL REFERENCES scrape_records(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			type TEXT NOT NULL,
			value TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_images_record_id ON images(record_id);
		CREATE INDEX IF NOT EXISTS idx_social_links_record_id ON social_links(record_id);
		CREATE INDEX IF NOT EXISTS idx_contact_infos_record_id ON contact_infos(record_id);
	`

	_, err := db.db.Exec(schema)
	return err
}
