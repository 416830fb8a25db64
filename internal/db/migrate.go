package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are idempotent: every statement is safe to re-run on an
// existing database.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		base_currency TEXT NOT NULL DEFAULT 'USD',
		usd_rate      TEXT NOT NULL DEFAULT '1',
		eur_rate      TEXT NOT NULL DEFAULT '1',
		donor         TEXT NOT NULL DEFAULT '',
		sector        TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sections (
		id          TEXT PRIMARY KEY,
		document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		collapsed   INTEGER NOT NULL DEFAULT 0,
		cap_type    TEXT NOT NULL DEFAULT 'none'
		            CHECK(cap_type IN ('none','fixed-amount','percent-of-grand-total')),
		cap_value   TEXT NOT NULL DEFAULT '0',
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	// parent_id deliberately carries no foreign key: dangling references are
	// valid data (the engine promotes them to roots) and must survive a save.
	`CREATE TABLE IF NOT EXISTS lines (
		id          TEXT PRIMARY KEY,
		document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		section_id  TEXT NOT NULL REFERENCES sections(id) ON DELETE CASCADE,
		parent_id   TEXT,
		category    TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		note        TEXT NOT NULL DEFAULT '',
		unit        TEXT NOT NULL DEFAULT '',
		quantity    TEXT NOT NULL DEFAULT '1',
		frequency   TEXT NOT NULL DEFAULT '1',
		unit_cost   TEXT NOT NULL DEFAULT '0',
		total       TEXT NOT NULL DEFAULT '0',
		selected    INTEGER NOT NULL DEFAULT 0,
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_lines_document ON lines(document_id, order_index)`,
	`CREATE INDEX IF NOT EXISTS idx_sections_document ON sections(document_id, order_index)`,

	`CREATE TABLE IF NOT EXISTS cost_records (
		id          TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		category    TEXT NOT NULL DEFAULT '',
		unit        TEXT NOT NULL DEFAULT '',
		unit_cost   TEXT NOT NULL DEFAULT '0',
		currency    TEXT NOT NULL DEFAULT 'USD',
		year        INTEGER NOT NULL DEFAULT 0,
		donor       TEXT NOT NULL DEFAULT '',
		sector      TEXT NOT NULL DEFAULT '',
		document_id TEXT NOT NULL DEFAULT '',
		updated_at  TEXT NOT NULL,
		UNIQUE(document_id, description, category, unit)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cost_records_description ON cost_records(description)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
