package db

import (
	"database/sql"
	"fmt"
)

var postgresSchema = []string{
	`
CREATE TABLE IF NOT EXISTS selection_blobs (
    key        TEXT PRIMARY KEY,
    value      BYTEA NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS records (
    id              BIGINT PRIMARY KEY,
    title           TEXT NOT NULL DEFAULT '',
    place_of_origin TEXT NOT NULL DEFAULT '',
    artist_display  TEXT NOT NULL DEFAULT '',
    inscriptions    TEXT NOT NULL DEFAULT '',
    date_start      INTEGER NOT NULL DEFAULT 0,
    date_end        INTEGER NOT NULL DEFAULT 0
)`,
}

var sqliteSchema = []string{
	`
CREATE TABLE IF NOT EXISTS selection_blobs (
    key        TEXT PRIMARY KEY,
    value      BLOB NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`
CREATE TABLE IF NOT EXISTS records (
    id              INTEGER PRIMARY KEY,
    title           TEXT NOT NULL DEFAULT '',
    place_of_origin TEXT NOT NULL DEFAULT '',
    artist_display  TEXT NOT NULL DEFAULT '',
    inscriptions    TEXT NOT NULL DEFAULT '',
    date_start      INTEGER NOT NULL DEFAULT 0,
    date_end        INTEGER NOT NULL DEFAULT 0
)`,
}

// MigrateUp creates the selection_blobs and records tables if they are missing.
func MigrateUp(db *sql.DB, dialect Dialect) error {
	var statements []string
	switch dialect {
	case DialectPostgres:
		statements = postgresSchema
	case DialectSQLite:
		statements = sqliteSchema
	default:
		return fmt.Errorf("migrate: unsupported dialect %q", dialect)
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown drops the tables created by MigrateUp.
// Use with caution: this deletes the persisted selection and the local catalog.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS records`,
		`DROP TABLE IF EXISTS selection_blobs`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
