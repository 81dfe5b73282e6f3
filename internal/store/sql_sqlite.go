package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/quillnote/quillnote/internal/config"
	"github.com/quillnote/quillnote/internal/logger"
)

// The open connection is cached process-wide and reused for the process
// lifetime. SQLite does its own file locking; a single pooled connection
// avoids writer contention entirely.
var (
	sharedMu sync.Mutex
	sharedDB *DB
)

// OpenSharedDB returns the process-wide database handle, opening it on
// first use. If the cached handle no longer responds (closed or broken), a
// fresh connection is opened transparently.
func OpenSharedDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedDB != nil {
		if err := sharedDB.PingContext(ctx); err == nil {
			return sharedDB, nil
		}
		log.Warn().Str("func", "OpenSharedDB").Msg("cached connection is dead, reopening")
		sharedDB = nil
	}

	db, err := NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	sharedDB = db
	return sharedDB, nil
}

// resetSharedDB drops the cached handle if it is the one being closed, so a
// later OpenSharedDB does not hand out a dead connection.
func resetSharedDB(db *DB) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedDB == db {
		sharedDB = nil
	}
}

// NewConnectSQLite opens the SQLite database at cfg.DSN, creating the file
// if it does not exist. Foreign-key enforcement is switched on at
// connection time so that hard-deleting a note cascades to its image rows
// without a second statement.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dsn := withForeignKeys(cfg.DSN)

	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// One pooled connection keeps PRAGMA state and write ordering simple.
	conn.SetMaxOpenConns(1)

	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	db := &DB{
		DB:     conn,
		logger: log,
	}

	return db, nil
}

func withForeignKeys(dsn string) string {
	if dsn == "" || dsn == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}

	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}

	return dsn + "?_foreign_keys=on"
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if dbFile == "" || dbFile == ":memory:" || strings.HasPrefix(dbFile, "file:") {
		return nil
	}

	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
