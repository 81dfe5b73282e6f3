// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// quillnote application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the retention window for
	// soft-deleted notes and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for all persistence backends: the local
	// note database and the managed images directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for the background maintenance workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// RetentionDays is how long soft-deleted notes are kept before the
	// purge pass hard-deletes them.
	// Env: APP_RETENTION_DAYS
	RetentionDays int `env:"RETENTION_DAYS"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the local note database settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the file-system storage settings for attached images and
	// the user settings blob.
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the embedded note database.
type DB struct {
	// DSN is the SQLite data source name: a file path, optionally with
	// driver options (e.g. "notes.db"). Foreign-key enforcement is always
	// appended at connection time.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings for durable artefacts outside the
// relational database.
type Files struct {
	// ImagesDir is the directory where attached image files are stored.
	// Created on first use.
	// Env: STORAGE_FILES_IMAGES_DIR
	ImagesDir string `env:"IMAGES_DIR"`

	// SettingsPath is the path of the JSON blob holding user settings
	// (theme, display name). Empty disables settings persistence.
	// Env: STORAGE_FILES_SETTINGS_PATH
	SettingsPath string `env:"SETTINGS_PATH"`
}

// Workers holds configuration for the background maintenance workers.
type Workers struct {
	// PurgeInterval is how often the retention purge runs.
	// Env: WORKERS_PURGE_INTERVAL
	PurgeInterval time.Duration `env:"PURGE_INTERVAL"`

	// OrphanScanInterval is how often orphaned image files are reconciled
	// against the association rows.
	// Env: WORKERS_ORPHAN_SCAN_INTERVAL
	OrphanScanInterval time.Duration `env:"ORPHAN_SCAN_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
