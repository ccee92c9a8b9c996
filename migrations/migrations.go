// Package migrations embeds the goose schema migrations for each supported dialect.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed mysql/*.sql sqlite/*.sql
var FS embed.FS

// Up applies all pending migrations for the given driver ("mysql" or "sqlite").
func Up(db *sql.DB, driver string) error {
	dialect, dir, err := dialectFor(driver)
	if err != nil {
		return err
	}
	goose.SetBaseFS(FS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("error setting migration dialect: %v", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("error applying migrations: %v", err)
	}
	return nil
}

// Status logs the applied/pending state of every migration.
func Status(db *sql.DB, driver string) error {
	dialect, dir, err := dialectFor(driver)
	if err != nil {
		return err
	}
	goose.SetBaseFS(FS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("error setting migration dialect: %v", err)
	}
	return goose.Status(db, dir)
}

func dialectFor(driver string) (string, string, error) {
	switch driver {
	case "mysql":
		return "mysql", "mysql", nil
	case "sqlite":
		return "sqlite3", "sqlite", nil
	default:
		return "", "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}
