package testutil

import (
	"database/sql"
	"testing"

	"github.com/nwaller/loadboard/internal/db"
)

// NewTestDB opens a fresh in-memory board database, fully migrated, and
// closes it when the test ends. Every caller gets its own schema; tests
// never share staff or group state.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW wraps a test database in the unit of work the board service
// uses for relocation write-back.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
