// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/quillnote/quillnote/internal/logger"
	"github.com/quillnote/quillnote/models"
)

// Snapshot is an immutable view of the aggregate note state handed to the
// interface layer. The slice is a copy; mutating it does not affect the
// state.
type Snapshot struct {
	Notes        []models.Note
	SearchQuery  string
	IsLoading    bool
	ErrorMessage string
}

// NotesState is the in-memory aggregate over the note repository: the
// loaded note list, the active search query, and loading/error indicators.
// All mutations go through the repository first and only update the cached
// list once persistence succeeded, so the state never shows writes that
// did not land.
//
// Every method is safe for concurrent use; a single mutex serializes both
// the repository round-trip and the cache update, which keeps the list
// consistent with the query that produced it.
type NotesState struct {
	mu sync.Mutex

	repo NotesRepository

	notes        []models.Note
	searchQuery  string
	isLoading    bool
	errorMessage string

	logger *logger.Logger
}

// NewNotesState constructs an empty aggregate over repo. Call Load to
// populate it.
func NewNotesState(repo NotesRepository, logger *logger.Logger) *NotesState {
	return &NotesState{
		repo:   repo,
		notes:  []models.Note{},
		logger: logger,
	}
}

// Snapshot returns a copy of the current state.
func (s *NotesState) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *NotesState) snapshotLocked() Snapshot {
	notes := make([]models.Note, len(s.notes))
	copy(notes, s.notes)

	return Snapshot{
		Notes:        notes,
		SearchQuery:  s.searchQuery,
		IsLoading:    s.isLoading,
		ErrorMessage: s.errorMessage,
	}
}

// Load populates the list from the repository, honouring the active search
// query. On failure the previous list is kept and ErrorMessage is set to a
// user-facing string.
func (s *NotesState) Load(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked(ctx)
}

// Refresh is Load under its interface-layer name (pull-to-refresh).
func (s *NotesState) Refresh(ctx context.Context) Snapshot {
	return s.Load(ctx)
}

func (s *NotesState) loadLocked(ctx context.Context) Snapshot {
	log := logger.FromContext(ctx)

	s.isLoading = true
	s.errorMessage = ""

	var (
		notes []models.Note
		err   error
	)
	if s.searchQuery == "" {
		notes, err = s.repo.FetchAllNotes(ctx)
	} else {
		notes, err = s.repo.SearchNotes(ctx, s.searchQuery)
	}

	s.isLoading = false

	if err != nil {
		log.Err(err).
			Str("func", "NotesState.Load").
			Str("search_query", s.searchQuery).
			Msg("failed to load notes")
		s.errorMessage = MsgLoadNotesFailed
		return s.snapshotLocked()
	}

	s.notes = SortedNotes(notes)

	return s.snapshotLocked()
}

// CreateNote persists the note and, on success, prepends it to the cached
// list. The repository already orders by recency and a fresh note is the
// most recent, so no reload is needed.
func (s *NotesState) CreateNote(ctx context.Context, note models.Note) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	s.errorMessage = ""

	created, err := s.repo.CreateNote(ctx, note)
	if err != nil {
		log.Err(err).
			Str("func", "NotesState.CreateNote").
			Str("note_id", note.ID).
			Msg("failed to create note")
		s.errorMessage = MsgCreateNoteFailed
		return s.snapshotLocked()
	}

	s.notes = append([]models.Note{created}, s.notes...)

	return s.snapshotLocked()
}

// UpdateNote persists the change and, on success, replaces the cached entry
// and re-sorts so the freshly touched note bubbles to the top.
func (s *NotesState) UpdateNote(ctx context.Context, note models.Note) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	s.errorMessage = ""

	updated, err := s.repo.UpdateNote(ctx, note)
	if err != nil {
		log.Err(err).
			Str("func", "NotesState.UpdateNote").
			Str("note_id", note.ID).
			Msg("failed to update note")
		s.errorMessage = MsgUpdateNoteFailed
		return s.snapshotLocked()
	}

	for i := range s.notes {
		if s.notes[i].Equal(updated) {
			s.notes[i] = updated
			break
		}
	}
	s.notes = SortedNotes(s.notes)

	return s.snapshotLocked()
}

// DeleteNote removes the note and, on success, drops it from the cached
// list. Soft or hard, the read model stops showing it either way.
func (s *NotesState) DeleteNote(ctx context.Context, id string, hardDelete bool) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	s.errorMessage = ""

	if err := s.repo.DeleteNote(ctx, id, hardDelete); err != nil {
		log.Err(err).
			Str("func", "NotesState.DeleteNote").
			Str("note_id", id).
			Msg("failed to delete note")
		s.errorMessage = MsgDeleteNoteFailed
		return s.snapshotLocked()
	}

	kept := s.notes[:0]
	for _, note := range s.notes {
		if note.ID != id {
			kept = append(kept, note)
		}
	}
	s.notes = kept

	return s.snapshotLocked()
}

// SetSearchQuery updates the active query. It is a pure state mutation:
// the interface layer filters the already-loaded list via [FilteredNotes]
// for instant feedback, and a subsequent Load runs the persisted search.
func (s *NotesState) SetSearchQuery(query string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchQuery = query

	return s.snapshotLocked()
}

// ClearSearch resets the query.
func (s *NotesState) ClearSearch() Snapshot {
	return s.SetSearchQuery("")
}

// GetNoteByID returns the cached note with the given id, or nil if it is
// not in the current list. This is a local lookup; it never touches the
// repository.
func (s *NotesState) GetNoteByID(id string) *models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].ID == id {
			note := s.notes[i]
			return &note
		}
	}

	return nil
}

// FilteredNotes narrows an already-loaded list by a case-insensitive
// substring match over title, content preview and category. Used for
// instant as-you-type filtering without a repository round-trip; blank
// queries pass everything through.
func FilteredNotes(notes []models.Note, query string) []models.Note {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return notes
	}

	filtered := make([]models.Note, 0, len(notes))
	for _, note := range notes {
		if strings.Contains(strings.ToLower(note.Title), needle) ||
			strings.Contains(strings.ToLower(note.ContentPreview()), needle) ||
			strings.Contains(strings.ToLower(note.Category), needle) {
			filtered = append(filtered, note)
		}
	}

	return filtered
}

// SortedNotes returns the notes ordered by UpdatedAt descending. The sort
// is stable so equal timestamps keep their incoming order.
func SortedNotes(notes []models.Note) []models.Note {
	sorted := make([]models.Note, len(notes))
	copy(sorted, notes)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})

	return sorted
}
