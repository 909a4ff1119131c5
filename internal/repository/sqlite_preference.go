package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/nwaller/loadboard/internal/db"
)

// SQLitePreferenceRepo implements PreferenceRepo over the preferences
// table. Values are stored verbatim as JSON text; their shape is opaque
// to the store.
type SQLitePreferenceRepo struct {
	db db.DBTX
}

// NewSQLitePreferenceRepo creates a new SQLitePreferenceRepo.
func NewSQLitePreferenceRepo(conn db.DBTX) *SQLitePreferenceRepo {
	return &SQLitePreferenceRepo{db: conn}
}

// Get returns the stored value for key, or def when the key is absent.
func (r *SQLitePreferenceRepo) Get(ctx context.Context, key string, def json.RawMessage) (json.RawMessage, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return def, nil
		}
		return nil, fmt.Errorf("reading preference %q: %w", key, err)
	}
	return json.RawMessage(value), nil
}

func (r *SQLitePreferenceRepo) Set(ctx context.Context, key string, value json.RawMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO preferences (key, value) VALUES (?, ?)`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("writing preference %q: %w", key, err)
	}
	return nil
}
