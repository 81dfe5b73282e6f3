package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quillnote/quillnote/internal/config"
	"github.com/quillnote/quillnote/internal/logger"
	"github.com/quillnote/quillnote/models"
)

// newTestDB opens a fresh in-memory database with the full schema applied.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), config.DB{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.CloseDatabase() })

	require.NoError(t, db.Migrate())

	return db
}

func newTestRepos(t *testing.T) (NoteRepository, ImageRepository, *DB) {
	t.Helper()

	db := newTestDB(t)
	images := NewImageRepository(db)
	notes := NewNoteRepository(db, images)

	return notes, images, db
}

// testNote builds a note with explicit timestamps so ordering and retention
// behaviour can be asserted deterministically.
func testNote(id, title, content string, updatedAt time.Time) models.Note {
	return models.Note{
		ID:         id,
		Title:      title,
		Content:    content,
		ImagePaths: []string{},
		CreatedAt:  updatedAt,
		UpdatedAt:  updatedAt,
	}
}
