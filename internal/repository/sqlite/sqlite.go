// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C compiler
// installed and cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code, so no C compiler is needed.
//
// The package is split in two:
//   - statements.go builds Query values (SQL text + args). Pure, no I/O.
//   - article.go and session.go execute them through database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// memoryPath is the DSN for a private in-memory database.
const memoryPath = ":memory:"

// DB wraps a sql.DB connection pool and provides repository methods.
type DB struct {
	conn *sql.DB
}

// New opens the SQLite database at dbPath, applies connection pragmas and
// creates the articles table if it does not exist yet.
//
// dbPath examples:
//   - "data/articles.db" → file-based database (persistent)
//   - ":memory:"         → in-memory database (tests)
//
// IN-MEMORY AND THE POOL:
// Every new connection to ":memory:" gets its OWN empty database. sql.DB
// opens connections on demand, so a second connection would not see the
// table created by the first. We cap the pool at one connection in that case.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if dbPath == memoryPath {
		conn.SetMaxOpenConns(1)
	}

	// Ping verifies the connection actually works.
	// Without this, a bad path or permissions issue would only surface
	// on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: creating schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks that the database is still reachable. Used by /healthz.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: pinging database: %w", err)
	}
	return nil
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS is safe to run on
// every start; there is no versioned migration history.
//
// AUTOINCREMENT keeps SQLite from reusing the id of a deleted row, so a
// stale /articles/{id} link never points at a different article.
//
// The timestamp columns are TEXT rather than DATETIME on purpose: the
// driver converts DATETIME columns to time.Time, and we store the text that
// datetime('now') produced.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS articles (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			text    TEXT NOT NULL DEFAULT '',
			title   TEXT NOT NULL DEFAULT '',
			created TEXT NOT NULL DEFAULT (datetime('now')),
			updated TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`)
	if err != nil {
		return fmt.Errorf("creating articles table: %w", err)
	}

	return nil
}
