package store

import (
	"context"

	"github.com/quillnote/quillnote/internal/logger"
	"github.com/quillnote/quillnote/models"
)

// imagesRepository is the SQLite-backed implementation of [ImageRepository].
// It only manages association rows; the files live under the image store's
// managed directory.
type imagesRepository struct {
	*DB
}

// NewImageRepository constructs an [ImageRepository] backed by the provided
// database connection.
func NewImageRepository(db *DB) ImageRepository {
	return &imagesRepository{DB: db}
}

// AddImageToNote persists an image association with insert-or-replace
// semantics, so re-attaching the same image id is idempotent.
func (i *imagesRepository) AddImageToNote(ctx context.Context, image models.NoteImage) error {
	log := logger.FromContext(ctx)

	row := image.ToRow()
	_, err := i.DB.ExecContext(ctx, upsertNoteImage,
		row.ID,
		row.NoteID,
		row.FilePath,
		row.DisplayOrder,
		row.CreatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "imagesRepository.AddImageToNote").
			Str("image_id", image.ID).
			Str("note_id", image.NoteID).
			Msg("failed to execute upsert for note image")
		return newQueryError("imagesRepository.AddImageToNote", upsertNoteImage, err)
	}

	return nil
}

// RemoveImageFromNote deletes the association row. Removing an id that does
// not exist is not an error.
func (i *imagesRepository) RemoveImageFromNote(ctx context.Context, imageID string) error {
	log := logger.FromContext(ctx)

	_, err := i.DB.ExecContext(ctx, deleteNoteImage, imageID)
	if err != nil {
		log.Err(err).
			Str("func", "imagesRepository.RemoveImageFromNote").
			Str("image_id", imageID).
			Msg("failed to execute delete for note image")
		return newQueryError("imagesRepository.RemoveImageFromNote", deleteNoteImage, err)
	}

	return nil
}

// GetImagesForNote returns the associations for one note ordered by
// display_order ASC. A note without images yields an empty slice.
func (i *imagesRepository) GetImagesForNote(ctx context.Context, noteID string) ([]models.NoteImage, error) {
	return i.listImages(ctx, "imagesRepository.GetImagesForNote", getImagesForNote, noteID)
}

// GetAllImageRecords returns every association row in the database. Used by
// the orphan reconciliation pass to compare against the files on disk.
func (i *imagesRepository) GetAllImageRecords(ctx context.Context) ([]models.NoteImage, error) {
	return i.listImages(ctx, "imagesRepository.GetAllImageRecords", getAllImageRecords)
}

func (i *imagesRepository) listImages(ctx context.Context, op, query string, args ...any) ([]models.NoteImage, error) {
	log := logger.FromContext(ctx)

	rows, err := i.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", op).
			Msg("failed to execute query for listing note images")
		return nil, newQueryError(op, query, err)
	}
	defer rows.Close()

	images := make([]models.NoteImage, 0, 8)

	for rows.Next() {
		var row models.NoteImageRow

		scanErr := rows.Scan(
			&row.ID,
			&row.NoteID,
			&row.FilePath,
			&row.DisplayOrder,
			&row.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", op).
				Msg("failed to scan note image row")
			return nil, newQueryError(op, query, scanErr)
		}

		images = append(images, models.NoteImageFromRow(row))
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", op).
			Msg("error occurred during rows iteration")
		return nil, newQueryError(op, query, rowsErr)
	}

	return images, nil
}
