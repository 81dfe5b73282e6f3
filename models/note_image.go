package models

import "time"

// NoteImage associates an image file on durable storage with the note it is
// attached to. Rows cascade-delete with their owning note; the files
// themselves are reconciled separately by the image store's orphan pass.
type NoteImage struct {
	ID           string
	NoteID       string
	FilePath     string
	DisplayOrder int
	CreatedAt    time.Time
}
