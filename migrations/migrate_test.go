package migrations

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_FreshDatabase(t *testing.T) {
	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))

	version, err := Version(db)
	require.NoError(t, err)
	assert.Equal(t, Latest, version)

	// Both relations exist and accept rows.
	_, err = db.Exec(`INSERT INTO notes (id, title, content, created_at, updated_at) VALUES ('n1', 't', 'c', 0, 0)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO note_images (id, note_id, file_path, created_at) VALUES ('i1', 'n1', '/p', 0)`)
	require.NoError(t, err)

	// Re-running the apply loop on an up-to-date database is a no-op.
	require.NoError(t, Migrate(db))
}

func TestMigrate_NilDB(t *testing.T) {
	err := Migrate(nil)

	require.Error(t, err)
	assert.EqualError(t, err, "migration error: db is nil")
}

func TestVersion_NilDB(t *testing.T) {
	_, err := Version(nil)

	require.Error(t, err)
	assert.EqualError(t, err, "migration error: db is nil")
}

func TestMigrate_BrokenConnection(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// No expectations registered: the first bookkeeping query goose issues
	// is unexpected and fails, and Migrate must surface that.
	err = Migrate(db)

	require.Error(t, err)
	assert.ErrorContains(t, err, "migration error")
	_ = mock
}
