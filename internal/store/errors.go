package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by store methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrConnectionFailed is returned when the embedded database cannot be
	// opened (missing permissions, corrupt file, disk full). Every store
	// call fails with it until a connection can be established; the
	// application keeps running in a degraded read-nothing state.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrDatabaseClosed is returned when an operation is attempted against
	// a connection that has been closed via CloseDatabase.
	ErrDatabaseClosed = errors.New("database is closed")
)

// QueryError wraps the failure of an individual statement. It carries the
// original low-level cause and the offending query text for diagnostics.
// The raw text is meant for logs, never for end users.
type QueryError struct {
	// Op is the store method in which the statement failed.
	Op string
	// Query is the SQL text of the failed statement.
	Query string
	// Err is the underlying driver error.
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed in %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func newQueryError(op, query string, err error) *QueryError {
	return &QueryError{Op: op, Query: query, Err: err}
}

// MigrationError wraps a failed schema upgrade. It carries the version the
// database was at and the version the upgrade was heading for. Treated as
// fatal to startup.
type MigrationError struct {
	FromVersion int64
	ToVersion   int64
	Err         error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration from version %d to %d failed: %v", e.FromVersion, e.ToVersion, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}
