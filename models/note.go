// SPDX-License-Identifier: Apache-2.0

// Package models defines the persisted entities of quillnote and their
// mapping to and from the row shapes stored in the local SQLite database.
package models

import "time"

// Note is a single user note. Content holds the serialized rich-text
// payload produced by the editor; the store treats it as an opaque string
// and only the preview extractor ever looks inside it.
//
// ImagePaths is loaded from the note_images relation and is never written
// as part of the note row itself.
type Note struct {
	ID         string
	Title      string
	Content    string
	Category   string
	ImagePaths []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Deleted    bool
}

// NewNote builds a fresh note with CreatedAt == UpdatedAt == now and the
// soft-delete flag cleared. The caller supplies the identifier so that a
// retried create is idempotent.
func NewNote(id, title, content, category string, imagePaths []string) Note {
	now := time.Now()
	if imagePaths == nil {
		imagePaths = []string{}
	}

	return Note{
		ID:         id,
		Title:      title,
		Content:    content,
		Category:   category,
		ImagePaths: imagePaths,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Equal reports whether two notes refer to the same record.
// A note's identity is its ID; field contents do not participate.
func (n Note) Equal(other Note) bool {
	return n.ID == other.ID
}

// Touch refreshes UpdatedAt to the current time.
func (n *Note) Touch() {
	n.UpdatedAt = time.Now()
}
