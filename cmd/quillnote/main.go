// SPDX-License-Identifier: Apache-2.0

// quillnote is the local-first note-taking application shell. It wires the
// persistence layer (embedded SQLite store, managed image directory, user
// settings blob), the in-memory note aggregate, the autosave job and the
// background maintenance workers, then waits for a termination signal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/quillnote/quillnote/internal/config"
	"github.com/quillnote/quillnote/internal/logger"
	"github.com/quillnote/quillnote/internal/service"
	"github.com/quillnote/quillnote/internal/store"
	"github.com/quillnote/quillnote/internal/workers"
)

// Build info. Populated at link time via -ldflags "-X main.buildVersion=...".
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

func printBuildInfo() {
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

func main() {
	printBuildInfo()

	log := logger.NewFileLogger("app")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Str("func", "main").Msg("failed to load configuration")
	}

	ctx := log.WithContext(context.Background())

	log.Info().
		Str("func", "main").
		Str("version", cfg.App.Version).
		Int("retention_days", cfg.App.RetentionDays).
		Msg("starting quillnote")

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Str("func", "main").Msg("failed to initialize storages")
	}
	defer storages.Close()

	state := service.NewNotesState(storages.Notes, log)
	snapshot := state.Load(ctx)
	log.Info().
		Str("func", "main").
		Int("notes", len(snapshot.Notes)).
		Msg("note list loaded")

	autosave := service.NewAutosaveJob(state, service.DefaultAutosaveDelay, log)
	defer autosave.Stop(ctx)

	runner := workers.NewRunner(
		workers.NewPurgeWorker(storages.Notes, cfg.App.RetentionDays, cfg.Workers.PurgeInterval, log),
		workers.NewOrphanWorker(storages.Files, cfg.Workers.OrphanScanInterval, log),
	)
	runner.Start(ctx)
	defer runner.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	sig := <-quit

	log.Info().
		Str("func", "main").
		Str("signal", sig.String()).
		Msg("shutting down")
}
