package store

import (
	"context"

	"github.com/quillnote/quillnote/models"
)

// NoteRepository is the SQL-backed repository for note rows. It owns every
// statement touching the notes table.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNoteByID(ctx context.Context, id string) (*models.Note, error)
	GetNoteByIDIncludingDeleted(ctx context.Context, id string) (*models.Note, error)
	FetchAllNotes(ctx context.Context) ([]models.Note, error)
	SearchNotes(ctx context.Context, query string) ([]models.Note, error)
	UpdateNote(ctx context.Context, note models.Note) (models.Note, error)
	DeleteNote(ctx context.Context, id string, hardDelete bool) error
	NotesCount(ctx context.Context) int
	PurgeDeletedNotes(ctx context.Context, retentionDays int) int64
}

// ImageRepository is the SQL-backed repository for note-image association
// rows. File-level side effects live in [ImageStore], not here.
type ImageRepository interface {
	AddImageToNote(ctx context.Context, image models.NoteImage) error
	RemoveImageFromNote(ctx context.Context, imageID string) error
	GetImagesForNote(ctx context.Context, noteID string) ([]models.NoteImage, error)
	GetAllImageRecords(ctx context.Context) ([]models.NoteImage, error)
}

// SettingsStorage persists the small user-preferences blob (theme, display
// name) outside the relational database.
type SettingsStorage interface {
	Load() (models.Settings, error)
	Save(settings models.Settings) error
}
