package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the database and verifies the connection with a ping.
func Open(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// The schema is created per driver: the tables are identical, but the
// surrogate key syntax differs between Postgres and SQLite. Uniqueness and
// referential integrity are database-enforced rather than left to the
// application, and lists cascades on title deletion as a backstop to the
// explicit child-first delete in the store.
var schema = map[string][]string{
	"postgres": {
		`CREATE TABLE IF NOT EXISTS accounts (
			username TEXT PRIMARY KEY,
			password TEXT NOT NULL,
			fname TEXT NOT NULL DEFAULT '',
			lname TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS titles (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL REFERENCES accounts(username),
			title TEXT NOT NULL,
			date_modified TEXT NOT NULL,
			status BOOLEAN NOT NULL DEFAULT FALSE
		);`,
		`CREATE TABLE IF NOT EXISTS lists (
			id SERIAL PRIMARY KEY,
			title_id INTEGER NOT NULL REFERENCES titles(id) ON DELETE CASCADE,
			list_desc TEXT NOT NULL,
			status BOOLEAN NOT NULL DEFAULT FALSE
		);`,
	},
	"sqlite3": {
		`CREATE TABLE IF NOT EXISTS accounts (
			username TEXT PRIMARY KEY,
			password TEXT NOT NULL,
			fname TEXT NOT NULL DEFAULT '',
			lname TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS titles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL REFERENCES accounts(username),
			title TEXT NOT NULL,
			date_modified TEXT NOT NULL,
			status BOOLEAN NOT NULL DEFAULT FALSE
		);`,
		`CREATE TABLE IF NOT EXISTS lists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title_id INTEGER NOT NULL REFERENCES titles(id) ON DELETE CASCADE,
			list_desc TEXT NOT NULL,
			status BOOLEAN NOT NULL DEFAULT FALSE
		);`,
	},
}

// Migrate creates the schema if it does not exist yet. All statements run in
// one transaction so a failed bootstrap leaves nothing behind.
func Migrate(db *sql.DB, driver string) error {
	stmts, ok := schema[driver]
	if !ok {
		return fmt.Errorf("no schema for driver %q", driver)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return tx.Commit()
}
