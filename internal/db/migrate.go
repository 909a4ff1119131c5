package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; the
// migration list is re-run in full on every open.
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

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS staff (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		division   TEXT NOT NULL CHECK(division IN ('middle','high')),
		role       TEXT NOT NULL DEFAULT '',
		capacity   INTEGER NOT NULL DEFAULT 0 CHECK(capacity >= 0),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		staff_id           TEXT NOT NULL REFERENCES staff(id) ON DELETE CASCADE,
		position           INTEGER NOT NULL,
		course_id          TEXT NOT NULL,
		course_name        TEXT NOT NULL,
		group_id           TEXT NOT NULL,
		load               INTEGER NOT NULL DEFAULT 0 CHECK(load >= 0),
		excluded_from_load INTEGER NOT NULL DEFAULT 0,
		student_count      INTEGER,
		PRIMARY KEY (staff_id, position)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assignments_course ON assignments(course_id)`,

	`CREATE TABLE IF NOT EXISTS course_groups (
		id            TEXT PRIMARY KEY,
		label         TEXT NOT NULL,
		color         TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 0,
		protected     INTEGER NOT NULL DEFAULT 0,
		other_group   INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS group_columns (
		group_id             TEXT NOT NULL REFERENCES course_groups(id) ON DELETE CASCADE,
		position             INTEGER NOT NULL,
		column_id            TEXT NOT NULL,
		sections             INTEGER,
		periods_per_cycle    INTEGER,
		remaining_period     INTEGER,
		students_per_section INTEGER,
		PRIMARY KEY (group_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS preferences (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}
