// SPDX-License-Identifier: Apache-2.0

package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

const (
	upsertNote = `
		INSERT OR REPLACE INTO notes (
			id,
			title,
			content,
			category,
			created_at,
			updated_at,
			is_deleted
		) VALUES (?, ?, ?, ?, ?, ?, ?);`

	getNoteByID = `
		SELECT
			id,
			title,
			content,
			category,
			created_at,
			updated_at,
			is_deleted
		FROM notes
		WHERE id = ? AND is_deleted = 0;`

	getNoteByIDIncludingDeleted = `
		SELECT
			id,
			title,
			content,
			category,
			created_at,
			updated_at,
			is_deleted
		FROM notes
		WHERE id = ?;`

	updateNote = `
		UPDATE notes SET
			title      = ?,
			content    = ?,
			category   = ?,
			updated_at = ?
		WHERE id = ?;`

	softDeleteNote = `
		UPDATE notes SET
			is_deleted = 1,
			updated_at = ?
		WHERE id = ?;`

	hardDeleteNote = `
		DELETE FROM notes
		WHERE id = ?;`

	countActiveNotes = `
		SELECT COUNT(*)
		FROM notes
		WHERE is_deleted = 0;`

	purgeDeletedBefore = `
		DELETE FROM notes
		WHERE is_deleted = 1 AND updated_at < ?;`

	upsertNoteImage = `
		INSERT OR REPLACE INTO note_images (
			id,
			note_id,
			file_path,
			display_order,
			created_at
		) VALUES (?, ?, ?, ?, ?);`

	deleteNoteImage = `
		DELETE FROM note_images
		WHERE id = ?;`

	getImagesForNote = `
		SELECT
			id,
			note_id,
			file_path,
			display_order,
			created_at
		FROM note_images
		WHERE note_id = ?
		ORDER BY display_order ASC;`

	getAllImageRecords = `
		SELECT
			id,
			note_id,
			file_path,
			display_order,
			created_at
		FROM note_images;`
)

// buildListNotesQuery builds the active-note listing query, optionally
// narrowed by a case-insensitive substring filter over title and content.
// A blank filter lists everything; ordering is always updated_at DESC.
// LIKE metacharacters in the filter are escaped so the match is pure
// substring containment, never a wildcard pattern.
func buildListNotesQuery(search string) (string, []any, error) {
	builder := sq.Select("id", "title", "content", "category", "created_at", "updated_at", "is_deleted").
		From("notes").
		Where(sq.Eq{"is_deleted": 0}).
		OrderBy("updated_at DESC")

	if needle := strings.TrimSpace(search); needle != "" {
		pattern := "%" + escapeLike(strings.ToLower(needle)) + "%"
		builder = builder.Where(sq.Or{
			sq.Expr(`LOWER(title) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`LOWER(content) LIKE ? ESCAPE '\'`, pattern),
		})
	}

	return builder.ToSql()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
