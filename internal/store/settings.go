package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/quillnote/quillnote/internal/logger"
	"github.com/quillnote/quillnote/models"
)

// fileSettingsStorage persists the user-preferences blob as a small JSON
// file. An empty path switches it to memory-only mode, which the tests and
// ephemeral sessions use.
type fileSettingsStorage struct {
	mu     sync.Mutex
	path   string
	cached models.Settings
	loaded bool
	logger *logger.Logger
}

// NewSettingsStorage constructs a [SettingsStorage] persisting to path.
// With an empty path the settings live only in memory.
func NewSettingsStorage(path string, logger *logger.Logger) SettingsStorage {
	return &fileSettingsStorage{
		path:   path,
		logger: logger,
	}
}

// Load returns the persisted settings, reading the file once and caching
// the result. A missing file yields zero-value settings, not an error.
func (s *fileSettingsStorage) Load() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded || s.path == "" {
		return s.cached, nil
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.loaded = true
		return s.cached, nil
	}
	if err != nil {
		s.logger.Err(err).
			Str("func", "fileSettingsStorage.Load").
			Str("path", s.path).
			Msg("failed to read settings file")
		return models.Settings{}, fmt.Errorf("read settings file: %w", err)
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		s.logger.Err(err).
			Str("func", "fileSettingsStorage.Load").
			Str("path", s.path).
			Msg("failed to decode settings file")
		return models.Settings{}, fmt.Errorf("decode settings file: %w", err)
	}

	s.cached = settings
	s.loaded = true

	return s.cached, nil
}

// Save writes the settings to disk and refreshes the cache. In memory-only
// mode the cache is updated and nothing touches the filesystem.
func (s *fileSettingsStorage) Save(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = settings
	s.loaded = true

	if s.path == "" {
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	// Write-then-rename so a crash mid-save never leaves a torn file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		s.logger.Err(err).
			Str("func", "fileSettingsStorage.Save").
			Str("path", s.path).
			Msg("failed to write settings file")
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}

	return nil
}
