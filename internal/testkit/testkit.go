// Package testkit provides migrated SQLite databases for package tests.
package testkit

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"sway-pr/config"
	"sway-pr/migrations"
)

func init() {
	goose.SetLogger(goose.NopLogger())
}

// NewSQLiteDB opens a fresh file-backed database with all migrations applied.
// It is closed when the test finishes.
func NewSQLiteDB(t testing.TB) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open(config.DriverSQLite, config.SQLiteDSN(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(db, config.DriverSQLite))
	return db
}

// Str returns a pointer to s, for building nullable contact fields.
func Str(s string) *string {
	return &s
}
