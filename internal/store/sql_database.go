package store

import (
	"database/sql"
	"os"

	"github.com/quillnote/quillnote/internal/logger"
	"github.com/quillnote/quillnote/migrations"
)

// DB wraps the shared *sql.DB handle together with the application logger.
// All repositories embed it and execute their statements through it.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate brings the schema up to the latest embedded migration version.
// Failures are wrapped in [MigrationError] carrying the from/to versions.
func (db *DB) Migrate() error {
	from, err := migrations.Version(db.DB)
	if err != nil {
		// A fresh file has no goose bookkeeping table yet.
		from = 0
	}

	if err := migrations.Migrate(db.DB); err != nil {
		return &MigrationError{FromVersion: from, ToVersion: migrations.Latest, Err: err}
	}

	return nil
}

// CloseDatabase closes the shared connection. The next call to
// [OpenSharedDB] opens a fresh one transparently.
func (db *DB) CloseDatabase() error {
	resetSharedDB(db)
	return db.DB.Close()
}

// DeleteDatabaseFile closes the connection first, then removes the
// underlying storage artifact. Used for reset and testing, not normal
// operation. In-memory databases have no file to remove.
func (db *DB) DeleteDatabaseFile(path string) error {
	if err := db.CloseDatabase(); err != nil {
		return err
	}

	if path == "" || path == ":memory:" {
		return nil
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
