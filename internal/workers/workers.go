// SPDX-License-Identifier: Apache-2.0

// Package workers contains the background maintenance loops that keep the
// note database and the managed image directory tidy: the retention purge
// and the orphaned-file reconciliation.
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/quillnote/quillnote/internal/logger"
)

// MaintenanceTask is one pass of a periodic maintenance job.
type MaintenanceTask func(ctx context.Context)

// Worker runs a MaintenanceTask on a fixed interval until stopped. One
// pass runs immediately on Start so a long interval does not delay the
// first cleanup after launch.
type Worker struct {
	name     string
	interval time.Duration
	task     MaintenanceTask

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	logger *logger.Logger
}

// NewWorker constructs a named worker running task every interval.
func NewWorker(name string, interval time.Duration, task MaintenanceTask, logger *logger.Logger) *Worker {
	return &Worker{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger,
	}
}

// Start launches the loop. A non-positive interval disables the worker
// entirely; Start then does nothing.
func (w *Worker) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Info().
			Str("func", "Worker.Start").
			Str("worker", w.name).
			Msg("worker disabled by non-positive interval")
		return
	}

	ctx, cancel := context.WithCancel(w.logger.WithContext(ctx))
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.run(ctx)

	w.logger.Info().
		Str("func", "Worker.Start").
		Str("worker", w.name).
		Dur("interval", w.interval).
		Msg("worker started")
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)

	w.task(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.task(ctx)
		}
	}
}

// Stop cancels the loop and waits for the in-flight pass to finish. Safe
// to call multiple times, and a no-op if Start never ran.
func (w *Worker) Stop() {
	w.once.Do(func() {
		if w.cancel == nil {
			return
		}
		w.cancel()
		<-w.done

		w.logger.Info().
			Str("func", "Worker.Stop").
			Str("worker", w.name).
			Msg("worker stopped")
	})
}

// Runner owns a set of workers and starts/stops them together.
type Runner struct {
	workers []*Worker
}

// NewRunner builds a runner over the given workers.
func NewRunner(workers ...*Worker) *Runner {
	return &Runner{workers: workers}
}

// Start launches every worker.
func (r *Runner) Start(ctx context.Context) {
	for _, w := range r.workers {
		w.Start(ctx)
	}
}

// Stop stops every worker, waiting for each in turn.
func (r *Runner) Stop() {
	for _, w := range r.workers {
		w.Stop()
	}
}
