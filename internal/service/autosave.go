package service

import (
	"context"
	"sync"
	"time"

	"github.com/quillnote/quillnote/internal/logger"
	"github.com/quillnote/quillnote/models"
)

// DefaultAutosaveDelay is how long the editor can stay idle before a
// scheduled draft is persisted.
const DefaultAutosaveDelay = 2 * time.Second

// AutosaveJob persists editor drafts with a debounce: each Schedule call
// replaces the pending draft and restarts the countdown, so a burst of
// keystrokes produces a single write once typing pauses. Navigation away
// from the editor calls Flush to persist immediately.
type AutosaveJob struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending *models.Note
	stopped bool

	state  *NotesState
	logger *logger.Logger
}

// NewAutosaveJob constructs a job writing through state with the given
// debounce delay. A non-positive delay falls back to
// [DefaultAutosaveDelay].
func NewAutosaveJob(state *NotesState, delay time.Duration, logger *logger.Logger) *AutosaveJob {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}

	return &AutosaveJob{
		delay:  delay,
		state:  state,
		logger: logger,
	}
}

// Schedule replaces the pending draft and restarts the debounce countdown.
// Calls after Stop are ignored.
func (j *AutosaveJob) Schedule(note models.Note) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.stopped {
		return
	}

	j.pending = &note

	if j.timer != nil {
		j.timer.Stop()
	}
	j.timer = time.AfterFunc(j.delay, j.flushFromTimer)
}

func (j *AutosaveJob) flushFromTimer() {
	ctx := j.logger.WithContext(context.Background())
	j.Flush(ctx)
}

// Flush persists the pending draft immediately, if any, and cancels the
// countdown. Safe to call when nothing is pending.
func (j *AutosaveJob) Flush(ctx context.Context) {
	j.mu.Lock()

	if j.timer != nil {
		j.timer.Stop()
		j.timer = nil
	}

	pending := j.pending
	j.pending = nil

	j.mu.Unlock()

	if pending == nil {
		return
	}

	log := logger.FromContext(ctx)
	log.Debug().
		Str("func", "AutosaveJob.Flush").
		Str("note_id", pending.ID).
		Msg("persisting pending draft")

	snapshot := j.state.UpdateNote(ctx, *pending)
	if snapshot.ErrorMessage != "" {
		log.Warn().
			Str("func", "AutosaveJob.Flush").
			Str("note_id", pending.ID).
			Msg("autosave write failed, draft kept in editor state")
	}
}

// Stop flushes any pending draft and shuts the job down. Further Schedule
// calls become no-ops.
func (j *AutosaveJob) Stop(ctx context.Context) {
	j.mu.Lock()
	j.stopped = true
	j.mu.Unlock()

	j.Flush(ctx)
}
