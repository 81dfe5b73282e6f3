// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quillnote/quillnote/internal/logger"
	"github.com/quillnote/quillnote/internal/utils"
	"github.com/quillnote/quillnote/models"
)

// ImageStore owns the managed images directory and the association rows
// that tie image files to notes. Files are imported by copy so the source
// (camera roll, download folder) is never touched; every managed file gets
// a collision-proof generated name.
//
// File operations degrade gracefully: queries about files that cannot be
// answered return safe defaults (false, 0) instead of errors, because the
// editing workflow must never stall on a stat call.
type ImageStore struct {
	dir    string
	images ImageRepository
	uuids  *utils.UUIDGenerator
	logger *logger.Logger
}

// NewImageStore constructs an ImageStore rooted at dir. The directory is
// created on first import, not here.
func NewImageStore(dir string, images ImageRepository, uuids *utils.UUIDGenerator, logger *logger.Logger) *ImageStore {
	return &ImageStore{
		dir:    dir,
		images: images,
		uuids:  uuids,
		logger: logger,
	}
}

// Dir returns the managed images directory.
func (s *ImageStore) Dir() string {
	return s.dir
}

// ImportFromSource copies the file at sourcePath into the managed directory
// under a generated name of the form <unix-millis>_<uuid><ext>. The source
// extension is preserved; a source without one gets ".jpg". Returns the
// absolute path of the managed copy.
func (s *ImageStore) ImportFromSource(ctx context.Context, sourcePath string) (string, error) {
	log := logger.FromContext(ctx)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		log.Err(err).
			Str("func", "ImageStore.ImportFromSource").
			Str("dir", s.dir).
			Msg("failed to create managed images directory")
		return "", fmt.Errorf("create images dir: %w", err)
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		log.Err(err).
			Str("func", "ImageStore.ImportFromSource").
			Str("source", sourcePath).
			Msg("failed to open source image")
		return "", fmt.Errorf("open source image: %w", err)
	}
	defer src.Close()

	ext := filepath.Ext(sourcePath)
	if ext == "" {
		ext = ".jpg"
	}

	name := fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), s.uuids.Generate(), ext)
	destPath := filepath.Join(s.dir, name)

	dest, err := os.Create(destPath)
	if err != nil {
		log.Err(err).
			Str("func", "ImageStore.ImportFromSource").
			Str("dest", destPath).
			Msg("failed to create managed image file")
		return "", fmt.Errorf("create managed image: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		dest.Close()
		os.Remove(destPath)
		log.Err(err).
			Str("func", "ImageStore.ImportFromSource").
			Str("dest", destPath).
			Msg("failed to copy image into managed directory")
		return "", fmt.Errorf("copy image: %w", err)
	}

	log.Debug().
		Str("func", "ImageStore.ImportFromSource").
		Str("dest", destPath).
		Msg("imported image into managed directory")

	return destPath, nil
}

// AttachToNote imports the source file and records the association, placing
// the new image after the note's existing ones. Returns the stored
// association.
func (s *ImageStore) AttachToNote(ctx context.Context, noteID, sourcePath string) (models.NoteImage, error) {
	managedPath, err := s.ImportFromSource(ctx, sourcePath)
	if err != nil {
		return models.NoteImage{}, err
	}

	existing, err := s.images.GetImagesForNote(ctx, noteID)
	if err != nil {
		// The copy already happened; remove it rather than leak an orphan.
		os.Remove(managedPath)
		return models.NoteImage{}, err
	}

	image := models.NoteImage{
		ID:           s.uuids.Generate(),
		NoteID:       noteID,
		FilePath:     managedPath,
		DisplayOrder: len(existing),
		CreatedAt:    time.Now(),
	}

	if err := s.images.AddImageToNote(ctx, image); err != nil {
		os.Remove(managedPath)
		return models.NoteImage{}, err
	}

	return image, nil
}

// Detach removes the association row and then best-effort deletes the file.
// Returns true when the association was removed; a failed file removal is
// logged and left for the orphan pass to pick up.
func (s *ImageStore) Detach(ctx context.Context, image models.NoteImage) bool {
	log := logger.FromContext(ctx)

	if err := s.images.RemoveImageFromNote(ctx, image.ID); err != nil {
		return false
	}

	if err := os.Remove(image.FilePath); err != nil && !os.IsNotExist(err) {
		log.Warn().
			Str("func", "ImageStore.Detach").
			Str("path", image.FilePath).
			Msg("failed to remove image file, leaving it for the orphan pass")
	}

	return true
}

// ReconcileOrphans deletes managed files that no association row points to.
// Cascaded hard-deletes remove rows without touching files, so orphans
// accumulate between passes. Returns the number of files removed.
func (s *ImageStore) ReconcileOrphans(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	records, err := s.images.GetAllImageRecords(ctx)
	if err != nil {
		return 0, err
	}

	referenced := make(map[string]struct{}, len(records))
	for _, record := range records {
		referenced[filepath.Clean(record.FilePath)] = struct{}{}
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		log.Err(err).
			Str("func", "ImageStore.ReconcileOrphans").
			Str("dir", s.dir).
			Msg("failed to read managed images directory")
		return 0, fmt.Errorf("read images dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		path := filepath.Clean(filepath.Join(s.dir, entry.Name()))
		if _, ok := referenced[path]; ok {
			continue
		}

		if err := os.Remove(path); err != nil {
			log.Warn().
				Str("func", "ImageStore.ReconcileOrphans").
				Str("path", path).
				Msg("failed to remove orphaned image file")
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Info().
			Str("func", "ImageStore.ReconcileOrphans").
			Int("removed", removed).
			Msg("removed orphaned image files")
	}

	return removed, nil
}

// FileExists reports whether the managed file is present. Unanswerable
// stat calls count as absent.
func (s *ImageStore) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// FileSize returns the file's size in bytes, or 0 when it cannot be
// determined.
func (s *ImageStore) FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0
	}

	return info.Size()
}

// TotalManagedSize sums the sizes of all regular files in the managed
// directory. Returns 0 when the directory is missing or unreadable.
func (s *ImageStore) TotalManagedSize() int64 {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0
	}

	var total int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}

	return total
}
