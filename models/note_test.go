package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNote(t *testing.T) {
	before := time.Now()
	note := NewNote("note-1", "Groceries", "milk, eggs", "personal", nil)
	after := time.Now()

	assert.Equal(t, "note-1", note.ID)
	assert.Equal(t, "Groceries", note.Title)
	assert.Equal(t, "milk, eggs", note.Content)
	assert.Equal(t, "personal", note.Category)
	assert.False(t, note.Deleted)

	require.NotNil(t, note.ImagePaths)
	assert.Empty(t, note.ImagePaths)

	assert.Equal(t, note.CreatedAt, note.UpdatedAt)
	assert.False(t, note.CreatedAt.Before(before))
	assert.False(t, note.CreatedAt.After(after))
}

func TestNote_Equal(t *testing.T) {
	a := NewNote("same-id", "first", "", "", nil)
	b := NewNote("same-id", "totally different", "content", "work", []string{"x.jpg"})
	c := NewNote("other-id", "first", "", "", nil)

	assert.True(t, a.Equal(b), "identity is the ID, contents do not participate")
	assert.False(t, a.Equal(c))
}

func TestNote_Touch(t *testing.T) {
	note := NewNote("note-1", "t", "c", "", nil)
	original := note.UpdatedAt

	time.Sleep(2 * time.Millisecond)
	note.Touch()

	assert.True(t, note.UpdatedAt.After(original))
	assert.Equal(t, original, note.CreatedAt, "Touch must not move CreatedAt")
}
