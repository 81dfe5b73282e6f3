// SPDX-License-Identifier: Apache-2.0

package config

import "time"

// Defaults applied after merging when a value is still unset. The database
// DSN has no default on purpose: the caller decides where the note file
// lives (tests pass ":memory:").
const (
	defaultRetentionDays      = 30
	defaultPurgeInterval      = 24 * time.Hour
	defaultOrphanScanInterval = time.Hour
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.RetentionDays == 0 {
		cfg.App.RetentionDays = defaultRetentionDays
	}
	if cfg.Workers.PurgeInterval == 0 {
		cfg.Workers.PurgeInterval = defaultPurgeInterval
	}
	if cfg.Workers.OrphanScanInterval == 0 {
		cfg.Workers.OrphanScanInterval = defaultOrphanScanInterval
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.RetentionDays < 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Workers.PurgeInterval < 0 || cfg.Workers.OrphanScanInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
