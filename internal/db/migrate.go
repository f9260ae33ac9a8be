package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are applied in order on every open. Statements must stay
// re-runnable.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS controller_settings (
		id                 TEXT PRIMARY KEY,
		submit_time        TEXT NOT NULL,
		location           TEXT NOT NULL DEFAULT '',
		duration_cap_one   INTEGER NOT NULL,
		duration_cap_two   INTEGER NOT NULL,
		duration_cap_three INTEGER NOT NULL,
		gap_min            INTEGER NOT NULL,
		step_min           INTEGER NOT NULL,
		min_duration_min   INTEGER NOT NULL,
		max_duration_min   INTEGER NOT NULL,
		updated_at         TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS board_days (
		day            TEXT PRIMARY KEY,
		last_opened_at TEXT NOT NULL
	)`,
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
