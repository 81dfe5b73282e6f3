package workers

import (
	"context"
	"time"

	"github.com/quillnote/quillnote/internal/logger"
	"github.com/quillnote/quillnote/internal/store"
)

// NewPurgeWorker builds the worker that hard-deletes soft-deleted notes
// older than the retention window.
func NewPurgeWorker(notes store.NoteRepository, retentionDays int, interval time.Duration, log *logger.Logger) *Worker {
	task := func(ctx context.Context) {
		purged := notes.PurgeDeletedNotes(ctx, retentionDays)
		if purged > 0 {
			logger.FromContext(ctx).Info().
				Str("func", "PurgeWorker").
				Int64("purged", purged).
				Msg("retention purge pass complete")
		}
	}

	return NewWorker("purge", interval, task, log)
}

// NewOrphanWorker builds the worker that removes managed image files no
// association row references.
func NewOrphanWorker(files *store.ImageStore, interval time.Duration, log *logger.Logger) *Worker {
	task := func(ctx context.Context) {
		removed, err := files.ReconcileOrphans(ctx)
		if err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "OrphanWorker").
				Msg("orphan reconciliation pass failed")
			return
		}
		if removed > 0 {
			logger.FromContext(ctx).Info().
				Str("func", "OrphanWorker").
				Int("removed", removed).
				Msg("orphan reconciliation pass complete")
		}
	}

	return NewWorker("orphan-scan", interval, task, log)
}
