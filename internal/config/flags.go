package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database DSN (SQLite file path)
//	-images-dir managed images directory
//	-settings-path user settings JSON path
//	-c/-config json file path with configs
//	-retention-days retention window for soft-deleted notes
//	-purge-interval retention purge interval (e.g., "24h")
//	-orphan-scan-interval orphan image scan interval (e.g., "1h")
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var imagesDir string
	var settingsPath string
	var jsonConfigPath string
	var retentionDays int
	var purgeInterval time.Duration
	var orphanScanInterval time.Duration

	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&imagesDir, "images-dir", "", "Managed images directory")
	flag.StringVar(&settingsPath, "settings-path", "", "User settings JSON path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.IntVar(&retentionDays, "retention-days", 0, "Retention window for soft-deleted notes, in days")
	flag.DurationVar(&purgeInterval, "purge-interval", 0, "Retention purge interval (e.g., 24h)")
	flag.DurationVar(&orphanScanInterval, "orphan-scan-interval", 0, "Orphan image scan interval (e.g., 1h)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			RetentionDays: retentionDays,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Files: Files{
				ImagesDir:    imagesDir,
				SettingsPath: settingsPath,
			},
		},
		Workers: Workers{
			PurgeInterval:      purgeInterval,
			OrphanScanInterval: orphanScanInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
