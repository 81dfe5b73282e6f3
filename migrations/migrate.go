// Package migrations owns the versioned schema of the local note database.
// Migration steps are embedded SQL files applied in order by goose; adding
// a step means dropping a new numbered file next to the baseline.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Latest is the schema version the embedded migrations bring a database to.
// Bump it together with each new numbered migration file.
const Latest int64 = 1

// Version reports the schema version the database is currently at.
// A fresh database reports 0.
func Version(db *sql.DB) (int64, error) {
	if db == nil {
		return 0, errors.New("migration error: db is nil")
	}

	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	return goose.GetDBVersion(db)
}

func Migrate(db *sql.DB) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
