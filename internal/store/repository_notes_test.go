package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillnote/quillnote/models"
)

func TestNotesRepository_CreateAndGet(t *testing.T) {
	notes, _, _ := newTestRepos(t)
	ctx := context.Background()

	created, err := notes.CreateNote(ctx, models.NewNote("note-1", "Groceries", "milk, eggs", "personal", nil))
	require.NoError(t, err)

	got, err := notes.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Groceries", got.Title)
	assert.Equal(t, "milk, eggs", got.Content)
	assert.Equal(t, "personal", got.Category)
	assert.False(t, got.Deleted)
	assert.NotNil(t, got.ImagePaths)
	assert.WithinDuration(t, created.UpdatedAt, got.UpdatedAt, time.Millisecond)
}

func TestNotesRepository_GetNoteByID_Missing(t *testing.T) {
	notes, _, _ := newTestRepos(t)

	got, err := notes.GetNoteByID(context.Background(), "no-such-note")

	require.NoError(t, err, "absence is not an error")
	assert.Nil(t, got)
}

func TestNotesRepository_CreateIsIdempotent(t *testing.T) {
	notes, _, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := notes.CreateNote(ctx, models.NewNote("note-1", "first", "a", "", nil))
	require.NoError(t, err)

	// Retrying the create with the same id must overwrite, not duplicate.
	_, err = notes.CreateNote(ctx, models.NewNote("note-1", "second", "b", "", nil))
	require.NoError(t, err)

	assert.Equal(t, 1, notes.NotesCount(ctx))

	got, err := notes.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Title)
}

func TestNotesRepository_UpdateNote(t *testing.T) {
	notes, _, _ := newTestRepos(t)
	ctx := context.Background()

	original, err := notes.CreateNote(ctx, testNote("note-1", "before", "old", time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	original.Title = "after"
	original.Content = "new"
	original.Category = "work"

	updated, err := notes.UpdateNote(ctx, original)
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(original.CreatedAt), "update must refresh the timestamp")

	got, err := notes.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, "new", got.Content)
	assert.Equal(t, "work", got.Category)
	assert.WithinDuration(t, got.CreatedAt, original.CreatedAt, time.Millisecond, "update must not move CreatedAt")
}

func TestNotesRepository_SoftDelete(t *testing.T) {
	notes, _, _ := newTestRepos(t)
	ctx := context.Background()

	created, err := notes.CreateNote(ctx, testNote("note-1", "doomed", "", time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	require.NoError(t, notes.DeleteNote(ctx, "note-1", false))

	got, err := notes.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	assert.Nil(t, got, "soft-deleted notes are invisible to active reads")

	all, err := notes.FetchAllNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.Equal(t, 0, notes.NotesCount(ctx))

	trashed, err := notes.GetNoteByIDIncludingDeleted(ctx, "note-1")
	require.NoError(t, err)
	require.NotNil(t, trashed)
	assert.True(t, trashed.Deleted)
	assert.True(t, trashed.UpdatedAt.After(created.UpdatedAt), "soft delete must refresh updated_at so retention counts from deletion")
}

func TestNotesRepository_HardDeleteCascadesToImages(t *testing.T) {
	notes, images, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := notes.CreateNote(ctx, models.NewNote("note-1", "with images", "", "", nil))
	require.NoError(t, err)

	require.NoError(t, images.AddImageToNote(ctx, models.NoteImage{
		ID:        "img-1",
		NoteID:    "note-1",
		FilePath:  "/imgs/a.jpg",
		CreatedAt: time.Now(),
	}))

	require.NoError(t, notes.DeleteNote(ctx, "note-1", true))

	gone, err := notes.GetNoteByIDIncludingDeleted(ctx, "note-1")
	require.NoError(t, err)
	assert.Nil(t, gone)

	remaining, err := images.GetAllImageRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining, "hard delete must cascade to image rows")
}

func TestNotesRepository_FetchAllOrdering(t *testing.T) {
	notes, _, _ := newTestRepos(t)
	ctx := context.Background()

	base := time.Now()
	for _, n := range []models.Note{
		testNote("oldest", "a", "", base.Add(-3*time.Hour)),
		testNote("newest", "b", "", base),
		testNote("middle", "c", "", base.Add(-1*time.Hour)),
	} {
		_, err := notes.CreateNote(ctx, n)
		require.NoError(t, err)
	}

	all, err := notes.FetchAllNotes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, "newest", all[0].ID)
	assert.Equal(t, "middle", all[1].ID)
	assert.Equal(t, "oldest", all[2].ID)
}

func TestNotesRepository_Search(t *testing.T) {
	notes, _, _ := newTestRepos(t)
	ctx := context.Background()

	base := time.Now()
	seed := []models.Note{
		testNote("note-1", "Grocery List", "buy Milk and bread", base.Add(-2*time.Hour)),
		testNote("note-2", "Work meeting", "discuss milk pricing", base.Add(-1*time.Hour)),
		testNote("note-3", "Holiday plan", "beach, sunscreen", base),
	}
	for _, n := range seed {
		_, err := notes.CreateNote(ctx, n)
		require.NoError(t, err)
	}
	require.NoError(t, notes.DeleteNote(ctx, "note-3", false))

	t.Run("case-insensitive over title and content", func(t *testing.T) {
		found, err := notes.SearchNotes(ctx, "MILK")
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "note-2", found[0].ID, "results keep the updated_at DESC ordering")
		assert.Equal(t, "note-1", found[1].ID)
	})

	t.Run("blank query lists all active notes", func(t *testing.T) {
		found, err := notes.SearchNotes(ctx, "   ")
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("soft-deleted notes never match", func(t *testing.T) {
		found, err := notes.SearchNotes(ctx, "beach")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		found, err := notes.SearchNotes(ctx, "zebra")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("wildcard characters match literally", func(t *testing.T) {
		// Unescaped, "o_k" would wildcard-match the "ork" in "Work meeting".
		found, err := notes.SearchNotes(ctx, "o_k")
		require.NoError(t, err)
		assert.Empty(t, found)

		found, err = notes.SearchNotes(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, found, "a bare percent sign is not a match-everything pattern")
	})
}

func TestNotesRepository_ListingPopulatesImagesForEveryNote(t *testing.T) {
	notes, images, _ := newTestRepos(t)

	// Bounded context: with the pool capped at one connection, a listing
	// that held its cursor open across the image lookups would park here
	// instead of completing.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	base := time.Now()
	for i, id := range []string{"note-1", "note-2", "note-3"} {
		_, err := notes.CreateNote(ctx, testNote(id, "plan", "", base.Add(time.Duration(-i)*time.Hour)))
		require.NoError(t, err)
		require.NoError(t, images.AddImageToNote(ctx, models.NoteImage{
			ID:        id + "-img",
			NoteID:    id,
			FilePath:  "/imgs/" + id + ".jpg",
			CreatedAt: base,
		}))
	}

	all, err := notes.FetchAllNotes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, n := range all {
		assert.Equal(t, []string{"/imgs/" + n.ID + ".jpg"}, n.ImagePaths)
	}

	found, err := notes.SearchNotes(ctx, "plan")
	require.NoError(t, err)
	assert.Len(t, found, 3)
}

func TestNotesRepository_PurgeDeletedNotes(t *testing.T) {
	notes, _, _ := newTestRepos(t)
	ctx := context.Background()

	const retentionDays = 30
	now := time.Now()

	expired := testNote("expired", "long gone", "", now.AddDate(0, 0, -retentionDays-1))
	expired.Deleted = true
	recent := testNote("recent", "still in trash", "", now.AddDate(0, 0, -retentionDays).Add(time.Minute))
	recent.Deleted = true
	active := testNote("active", "old but alive", "", now.AddDate(0, 0, -90))

	for _, n := range []models.Note{expired, recent, active} {
		_, err := notes.CreateNote(ctx, n)
		require.NoError(t, err)
	}

	purged := notes.PurgeDeletedNotes(ctx, retentionDays)
	assert.Equal(t, int64(1), purged)

	gone, err := notes.GetNoteByIDIncludingDeleted(ctx, "expired")
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := notes.GetNoteByIDIncludingDeleted(ctx, "recent")
	require.NoError(t, err)
	assert.NotNil(t, kept, "notes inside the retention window stay in the trash")

	alive, err := notes.GetNoteByID(ctx, "active")
	require.NoError(t, err)
	assert.NotNil(t, alive, "the purge never touches active notes, however old")
}

func TestNotesRepository_PurgeCutoffIsExclusive(t *testing.T) {
	notes, _, _ := newTestRepos(t)
	ctx := context.Background()

	cutoff := time.UnixMilli(1700000000000)

	atCutoff := testNote("at-cutoff", "t", "", cutoff)
	atCutoff.Deleted = true
	justBelow := testNote("just-below", "t", "", cutoff.Add(-time.Millisecond))
	justBelow.Deleted = true

	for _, n := range []models.Note{atCutoff, justBelow} {
		_, err := notes.CreateNote(ctx, n)
		require.NoError(t, err)
	}

	repo := notes.(*notesRepository)

	// updated_at == cutoff survives; one millisecond older does not.
	assert.Equal(t, int64(1), repo.purgeBefore(ctx, cutoff.UnixMilli()))

	kept, err := notes.GetNoteByIDIncludingDeleted(ctx, "at-cutoff")
	require.NoError(t, err)
	assert.NotNil(t, kept)

	gone, err := notes.GetNoteByIDIncludingDeleted(ctx, "just-below")
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Moving the cutoff one millisecond forward purges the boundary row.
	assert.Equal(t, int64(1), repo.purgeBefore(ctx, cutoff.UnixMilli()+1))

	gone, err = notes.GetNoteByIDIncludingDeleted(ctx, "at-cutoff")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestNotesRepository_Scenario(t *testing.T) {
	notes, images, _ := newTestRepos(t)
	ctx := context.Background()

	// Create two notes, attach an image to the first.
	first, err := notes.CreateNote(ctx, models.NewNote("note-1", "first", "alpha", "", nil))
	require.NoError(t, err)
	_, err = notes.CreateNote(ctx, models.NewNote("note-2", "second", "beta", "", nil))
	require.NoError(t, err)

	require.NoError(t, images.AddImageToNote(ctx, models.NoteImage{
		ID: "img-1", NoteID: "note-1", FilePath: "/imgs/a.jpg", CreatedAt: time.Now(),
	}))

	// The image path surfaces on reads.
	got, err := notes.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"/imgs/a.jpg"}, got.ImagePaths)

	// Editing the first note bubbles it to the top of the list.
	first.Content = "alpha edited"
	_, err = notes.UpdateNote(ctx, first)
	require.NoError(t, err)

	all, err := notes.FetchAllNotes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "note-1", all[0].ID)

	// Trash the second note; the list shrinks but the row survives.
	require.NoError(t, notes.DeleteNote(ctx, "note-2", false))
	assert.Equal(t, 1, notes.NotesCount(ctx))

	trashed, err := notes.GetNoteByIDIncludingDeleted(ctx, "note-2")
	require.NoError(t, err)
	require.NotNil(t, trashed)
	assert.True(t, trashed.Deleted)

	// A zero-day retention purge removes it physically.
	time.Sleep(2 * time.Millisecond)
	assert.Equal(t, int64(1), notes.PurgeDeletedNotes(ctx, 0))

	gone, err := notes.GetNoteByIDIncludingDeleted(ctx, "note-2")
	require.NoError(t, err)
	assert.Nil(t, gone)

	all, err = notes.FetchAllNotes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
