package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/quillnote/quillnote/internal/logger"
	"github.com/quillnote/quillnote/models"
)

// notesRepository is the SQLite-backed implementation of [NoteRepository].
// It executes all note CRUD, search and purge statements against the notes
// table using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (note id, query kind, row counts).
type notesRepository struct {
	*DB
	images ImageRepository
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection. The images repository is used to populate
// ImagePaths on every note read.
func NewNoteRepository(db *DB, images ImageRepository) NoteRepository {
	return &notesRepository{
		DB:     db,
		images: images,
	}
}

// CreateNote persists the note with insert-or-replace semantics: calling it
// twice with the same id overwrites rather than erroring, which makes a
// retried create idempotent. The input note is returned unchanged.
func (n *notesRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := note.ToRow()
	_, err := n.DB.ExecContext(ctx, upsertNote,
		row.ID,
		row.Title,
		row.Content,
		row.Category,
		row.CreatedAt,
		row.UpdatedAt,
		row.IsDeleted,
	)
	if err != nil {
		log.Err(err).
			Str("func", "notesRepository.CreateNote").
			Str("note_id", note.ID).
			Msg("failed to execute upsert for note")
		return models.Note{}, newQueryError("notesRepository.CreateNote", upsertNote, err)
	}

	return note, nil
}

// GetNoteByID returns the active note with its images populated, or nil
// when no active row matches. "Not found" is not an error.
func (n *notesRepository) GetNoteByID(ctx context.Context, id string) (*models.Note, error) {
	return n.getNote(ctx, "notesRepository.GetNoteByID", getNoteByID, id)
}

// GetNoteByIDIncludingDeleted is like GetNoteByID but also finds
// soft-deleted rows. Used by retention tooling and tests.
func (n *notesRepository) GetNoteByIDIncludingDeleted(ctx context.Context, id string) (*models.Note, error) {
	return n.getNote(ctx, "notesRepository.GetNoteByIDIncludingDeleted", getNoteByIDIncludingDeleted, id)
}

func (n *notesRepository) getNote(ctx context.Context, op, query, id string) (*models.Note, error) {
	log := logger.FromContext(ctx)

	var row models.NoteRow
	scanErr := n.DB.QueryRowContext(ctx, query, id).Scan(
		&row.ID,
		&row.Title,
		&row.Content,
		&row.Category,
		&row.CreatedAt,
		&row.UpdatedAt,
		&row.IsDeleted,
	)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return nil, nil
	}
	if scanErr != nil {
		log.Err(scanErr).
			Str("func", op).
			Str("note_id", id).
			Msg("failed to scan note row")
		return nil, newQueryError(op, query, scanErr)
	}

	paths, err := n.imagePaths(ctx, row.ID)
	if err != nil {
		return nil, err
	}

	note := models.NoteFromRow(row, paths)
	return &note, nil
}

// FetchAllNotes returns all active notes ordered by updated_at DESC, each
// with its image paths populated by a per-note lookup ordered by
// display_order ASC. The per-note lookup is fine at this data scale.
func (n *notesRepository) FetchAllNotes(ctx context.Context) ([]models.Note, error) {
	return n.listNotes(ctx, "notesRepository.FetchAllNotes", "")
}

// SearchNotes returns active notes whose lower-cased title or content
// contains the lower-cased query as a substring, ordered by updated_at
// DESC. A blank query behaves exactly like FetchAllNotes. Matching is pure
// substring containment, no tokenization or ranking.
func (n *notesRepository) SearchNotes(ctx context.Context, query string) ([]models.Note, error) {
	return n.listNotes(ctx, "notesRepository.SearchNotes", query)
}

func (n *notesRepository) listNotes(ctx context.Context, op, search string) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListNotesQuery(search)
	if err != nil {
		log.Err(err).
			Str("func", op).
			Msg("failed to build note listing query")
		return nil, newQueryError(op, query, err)
	}

	rows, err := n.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", op).
			Msg("failed to execute query for listing notes")
		return nil, newQueryError(op, query, err)
	}
	defer rows.Close()

	noteRows := make([]models.NoteRow, 0, 50)

	for rows.Next() {
		var row models.NoteRow

		scanErr := rows.Scan(
			&row.ID,
			&row.Title,
			&row.Content,
			&row.Category,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.IsDeleted,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", op).
				Msg("failed to scan note row")
			return nil, newQueryError(op, query, scanErr)
		}

		noteRows = append(noteRows, row)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", op).
			Msg("error occurred during rows iteration")
		return nil, newQueryError(op, query, rowsErr)
	}

	// The pool holds a single connection and the open cursor pins it, so
	// the result set must be drained and released before the per-note
	// image lookups can run.
	rows.Close()

	notes := make([]models.Note, 0, len(noteRows))
	for _, row := range noteRows {
		paths, pathsErr := n.imagePaths(ctx, row.ID)
		if pathsErr != nil {
			return nil, pathsErr
		}

		notes = append(notes, models.NoteFromRow(row, paths))
	}

	return notes, nil
}

func (n *notesRepository) imagePaths(ctx context.Context, noteID string) ([]string, error) {
	images, err := n.images.GetImagesForNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(images))
	for _, image := range images {
		paths = append(paths, image.FilePath)
	}

	return paths, nil
}

// UpdateNote overwrites the row matched by id, stamping UpdatedAt with the
// current time regardless of what the input carries. Image associations are
// untouched. Returns the note with the refreshed timestamp.
func (n *notesRepository) UpdateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	note.UpdatedAt = time.Now()
	row := note.ToRow()

	_, err := n.DB.ExecContext(ctx, updateNote,
		row.Title,
		row.Content,
		row.Category,
		row.UpdatedAt,
		row.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "notesRepository.UpdateNote").
			Str("note_id", note.ID).
			Msg("failed to execute update for note")
		return models.Note{}, newQueryError("notesRepository.UpdateNote", updateNote, err)
	}

	return note, nil
}

// DeleteNote removes a note. With hardDelete the row is physically removed
// and the engine-level cascade takes the image rows with it; otherwise the
// row is marked deleted and updated_at refreshed.
func (n *notesRepository) DeleteNote(ctx context.Context, id string, hardDelete bool) error {
	log := logger.FromContext(ctx)

	query := softDeleteNote
	args := []any{time.Now().UnixMilli(), id}
	if hardDelete {
		query = hardDeleteNote
		args = []any{id}
	}

	_, err := n.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "notesRepository.DeleteNote").
			Str("note_id", id).
			Bool("hard_delete", hardDelete).
			Msg("failed to execute delete for note")
		return newQueryError("notesRepository.DeleteNote", query, err)
	}

	return nil
}

// NotesCount returns the number of active notes. The count is advisory
// (display only), so any failure degrades to 0 instead of propagating.
func (n *notesRepository) NotesCount(ctx context.Context) int {
	log := logger.FromContext(ctx)

	var count int
	err := n.DB.QueryRowContext(ctx, countActiveNotes).Scan(&count)
	if err != nil {
		log.Err(err).
			Str("func", "notesRepository.NotesCount").
			Msg("failed to count active notes")
		return 0
	}

	return count
}

// PurgeDeletedNotes hard-deletes every soft-deleted note whose updated_at
// is strictly older than now minus retentionDays. A note soft-deleted
// exactly retentionDays ago survives the pass. Returns the number of rows
// removed; failures degrade to 0 so the purge never blocks the editing
// workflow.
func (n *notesRepository) PurgeDeletedNotes(ctx context.Context, retentionDays int) int64 {
	cutoff := time.Now().AddDate(0, 0, -retentionDays).UnixMilli()
	return n.purgeBefore(ctx, cutoff)
}

// purgeBefore removes soft-deleted rows with updated_at strictly below
// cutoff (milliseconds since epoch). A row at exactly the cutoff is kept.
func (n *notesRepository) purgeBefore(ctx context.Context, cutoff int64) int64 {
	log := logger.FromContext(ctx)

	result, err := n.DB.ExecContext(ctx, purgeDeletedBefore, cutoff)
	if err != nil {
		log.Err(err).
			Str("func", "notesRepository.PurgeDeletedNotes").
			Int64("cutoff", cutoff).
			Msg("failed to purge soft-deleted notes")
		return 0
	}

	purged, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "notesRepository.PurgeDeletedNotes").
			Msg("failed to get rows affected after purge")
		return 0
	}

	if purged > 0 {
		log.Info().
			Str("func", "notesRepository.PurgeDeletedNotes").
			Int64("purged", purged).
			Msg("purged soft-deleted notes past retention")
	}

	return purged
}
