package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNote_RowRoundTrip(t *testing.T) {
	created := time.UnixMilli(1700000000000)
	updated := time.UnixMilli(1700000100000)

	note := Note{
		ID:         "note-1",
		Title:      "Trip plan",
		Content:    "pack bags",
		Category:   "travel",
		ImagePaths: []string{"/imgs/a.jpg"},
		CreatedAt:  created,
		UpdatedAt:  updated,
		Deleted:    true,
	}

	row := note.ToRow()

	assert.Equal(t, int64(1700000000000), row.CreatedAt)
	assert.Equal(t, int64(1700000100000), row.UpdatedAt)
	assert.True(t, row.Category.Valid)
	assert.Equal(t, int64(1), row.IsDeleted)

	back := NoteFromRow(row, []string{"/imgs/a.jpg"})

	assert.Equal(t, note.ID, back.ID)
	assert.Equal(t, note.Title, back.Title)
	assert.Equal(t, note.Content, back.Content)
	assert.Equal(t, note.Category, back.Category)
	assert.Equal(t, note.ImagePaths, back.ImagePaths)
	assert.True(t, back.CreatedAt.Equal(created))
	assert.True(t, back.UpdatedAt.Equal(updated))
	assert.True(t, back.Deleted)
}

func TestNote_ToRow_EmptyCategory(t *testing.T) {
	note := NewNote("note-1", "t", "c", "", nil)

	row := note.ToRow()

	assert.False(t, row.Category.Valid, "empty category persists as NULL")
	assert.Equal(t, int64(0), row.IsDeleted)
}

func TestNoteFromRow_NilImagePaths(t *testing.T) {
	note := NoteFromRow(NoteRow{ID: "note-1"}, nil)

	require.NotNil(t, note.ImagePaths)
	assert.Empty(t, note.ImagePaths)
}

func TestParseRowTime(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{
			name: "integer milliseconds",
			in:   int64(1700000000000),
			want: time.UnixMilli(1700000000000),
		},
		{
			name: "float milliseconds",
			in:   float64(1700000000000),
			want: time.UnixMilli(1700000000000),
		},
		{
			name: "iso8601 text from legacy rows",
			in:   "2023-11-14T22:13:20Z",
			want: time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC),
		},
		{
			name: "integer rendered as text",
			in:   "1700000000000",
			want: time.UnixMilli(1700000000000),
		},
		{
			name: "byte slice",
			in:   []byte("1700000000000"),
			want: time.UnixMilli(1700000000000),
		},
		{
			name: "native time",
			in:   time.UnixMilli(1700000000000),
			want: time.UnixMilli(1700000000000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRowTime(tt.in)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseRowTime_Garbage(t *testing.T) {
	before := time.Now()
	got := ParseRowTime("not a timestamp at all")
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}
