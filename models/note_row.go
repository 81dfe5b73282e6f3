package models

import (
	"database/sql"
	"strconv"
	"time"
)

// NoteRow is the persisted shape of a note in the notes table. Timestamps
// are stored as integer milliseconds since epoch and the soft-delete flag
// as 0/1. Image paths live in the note_images relation and are not part of
// the row.
//
// The timestamp fields are deliberately untyped: the current schema writes
// INTEGER values, but rows written by earlier versions of the app carry the
// same columns as ISO-8601 text, and both shapes must keep decoding.
type NoteRow struct {
	ID        string
	Title     string
	Content   string
	Category  sql.NullString
	CreatedAt any
	UpdatedAt any
	IsDeleted int64
}

// NoteImageRow is the persisted shape of a note-image association row.
type NoteImageRow struct {
	ID           string
	NoteID       string
	FilePath     string
	DisplayOrder int64
	CreatedAt    any
}

// ToRow maps a note to its persisted column set.
func (n Note) ToRow() NoteRow {
	row := NoteRow{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.UnixMilli(),
		UpdatedAt: n.UpdatedAt.UnixMilli(),
	}
	if n.Category != "" {
		row.Category = sql.NullString{String: n.Category, Valid: true}
	}
	if n.Deleted {
		row.IsDeleted = 1
	}

	return row
}

// NoteFromRow is the inverse of [Note.ToRow]. Image paths are loaded from
// the note_images relation by the caller and passed in separately.
func NoteFromRow(row NoteRow, imagePaths []string) Note {
	if imagePaths == nil {
		imagePaths = []string{}
	}

	return Note{
		ID:         row.ID,
		Title:      row.Title,
		Content:    row.Content,
		Category:   row.Category.String,
		ImagePaths: imagePaths,
		CreatedAt:  ParseRowTime(row.CreatedAt),
		UpdatedAt:  ParseRowTime(row.UpdatedAt),
		Deleted:    row.IsDeleted == 1,
	}
}

// ToRow maps an association to its persisted column set.
func (i NoteImage) ToRow() NoteImageRow {
	return NoteImageRow{
		ID:           i.ID,
		NoteID:       i.NoteID,
		FilePath:     i.FilePath,
		DisplayOrder: int64(i.DisplayOrder),
		CreatedAt:    i.CreatedAt.UnixMilli(),
	}
}

// NoteImageFromRow is the inverse of [NoteImage.ToRow].
func NoteImageFromRow(row NoteImageRow) NoteImage {
	return NoteImage{
		ID:           row.ID,
		NoteID:       row.NoteID,
		FilePath:     row.FilePath,
		DisplayOrder: int(row.DisplayOrder),
		CreatedAt:    ParseRowTime(row.CreatedAt),
	}
}

// ParseRowTime decodes a timestamp column value that may arrive as an
// integer (milliseconds since epoch), as ISO-8601 text, or as an integer
// rendered as text. Unparseable values fall back to the current time rather
// than failing the whole row.
func ParseRowTime(v any) time.Time {
	switch value := v.(type) {
	case int64:
		return time.UnixMilli(value)
	case float64:
		return time.UnixMilli(int64(value))
	case string:
		return parseTextTime(value)
	case []byte:
		return parseTextTime(string(value))
	case time.Time:
		return value
	default:
		return time.Now()
	}
}

func parseTextTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms)
	}

	return time.Now()
}
