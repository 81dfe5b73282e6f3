// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"

	"github.com/quillnote/quillnote/internal/config"
	"github.com/quillnote/quillnote/internal/logger"
	"github.com/quillnote/quillnote/internal/utils"
)

// Storages bundles every persistence backend the application uses: the
// note and image repositories over the shared SQLite handle, the managed
// image file store, and the JSON settings blob.
type Storages struct {
	DB       *DB
	Notes    NoteRepository
	Images   ImageRepository
	Files    *ImageStore
	Settings SettingsStorage

	logger *logger.Logger
}

// NewStorages opens the shared database handle, runs pending schema
// migrations and wires up all repositories. It is the single entry point
// the application shell uses to obtain persistence.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := OpenSharedDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("failed to migrate database schema")
		return nil, err
	}

	uuids := utils.NewUUIDGenerator()
	images := NewImageRepository(db)
	notes := NewNoteRepository(db, images)
	files := NewImageStore(cfg.Files.ImagesDir, images, uuids, log)
	settings := NewSettingsStorage(cfg.Files.SettingsPath, log)

	log.Debug().Str("func", "NewStorages").Msg("storages initialized")

	return &Storages{
		DB:       db,
		Notes:    notes,
		Images:   images,
		Files:    files,
		Settings: settings,
		logger:   log,
	}, nil
}

// Close releases the shared database handle.
func (s *Storages) Close() error {
	return s.DB.CloseDatabase()
}
