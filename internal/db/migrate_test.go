package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesAllTables(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"staff", "assignments", "course_groups", "group_columns", "preferences"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// Re-running the full migration list must not fail.
	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func TestMigrate_EnforcesDivisionCheck(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(
		`INSERT INTO staff (id, name, division, capacity, created_at, updated_at)
		 VALUES ('x', 'X', 'elementary', 10, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`,
	)
	assert.Error(t, err, "unknown division must be rejected by the CHECK constraint")
}

func TestMigrate_CascadesAssignmentDelete(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(
		`INSERT INTO staff (id, name, division, capacity, created_at, updated_at)
		 VALUES ('s1', 'A', 'middle', 10, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`,
	)
	require.NoError(t, err)
	_, err = database.Exec(
		`INSERT INTO assignments (staff_id, position, course_id, course_name, group_id, load)
		 VALUES ('s1', 0, 'CCW6_A', 'A', 'CCW6', 6)`,
	)
	require.NoError(t, err)

	_, err = database.Exec(`DELETE FROM staff WHERE id = 's1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM assignments`).Scan(&count))
	assert.Equal(t, 0, count, "assignments must cascade with their staff row")
}
