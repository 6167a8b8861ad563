package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS error_patterns (
			id               TEXT PRIMARY KEY,
			category         TEXT NOT NULL,
			subcategory      TEXT,
			target           TEXT,
			severity_level   INTEGER NOT NULL,
			occurrence_count INTEGER NOT NULL,
			confidence       REAL NOT NULL,
			last_seen_at     TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS suggestions (
			id               TEXT PRIMARY KEY,
			pattern_id       TEXT NOT NULL,
			type             TEXT NOT NULL,
			title            TEXT NOT NULL,
			description      TEXT NOT NULL,
			target_component TEXT NOT NULL,
			priority         INTEGER NOT NULL,
			confidence       REAL NOT NULL,
			effort_hours     REAL NOT NULL DEFAULT 0,
			tags             TEXT,
			status           TEXT NOT NULL DEFAULT 'proposed',
			created_at       TEXT NOT NULL,
			implemented_at   TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS error_rate_samples (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			pattern_id  TEXT NOT NULL REFERENCES error_patterns(id),
			rate        REAL NOT NULL,
			observed_at TEXT NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_patterns_category ON error_patterns(category)`,
		`CREATE INDEX IF NOT EXISTS idx_suggestions_status ON suggestions(status)`,
		`CREATE INDEX IF NOT EXISTS idx_suggestions_pattern ON suggestions(pattern_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rate_samples_pattern ON error_rate_samples(pattern_id, observed_at)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
