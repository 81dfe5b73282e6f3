package service

import (
	"context"

	"github.com/quillnote/quillnote/models"
)

// NotesReader is the slice of the note repository the aggregate state needs
// for loading and lookups.
type NotesReader interface {
	FetchAllNotes(ctx context.Context) ([]models.Note, error)
	SearchNotes(ctx context.Context, query string) ([]models.Note, error)
	GetNoteByID(ctx context.Context, id string) (*models.Note, error)
}

// NotesWriter is the slice of the note repository the aggregate state needs
// for mutations.
type NotesWriter interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	UpdateNote(ctx context.Context, note models.Note) (models.Note, error)
	DeleteNote(ctx context.Context, id string, hardDelete bool) error
}

// NotesRepository is the full repository surface the aggregate state is
// wired with.
type NotesRepository interface {
	NotesReader
	NotesWriter
}
