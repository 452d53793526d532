// Package config loads application configuration for the notification
// pipeline from TOML files, with sensible defaults when no file exists.
package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds notification pipeline settings.
type Config struct {
	AppName string `koanf:"app_name"`
	AppID   string `koanf:"app_id"`

	// DatabasePath locates the games/preferences database.
	DatabasePath string `koanf:"database_path"`

	// TempDir receives downloaded and materialized icon files.
	// Empty means the OS temp directory.
	TempDir string `koanf:"temp_dir"`

	// Bundled icon assets.
	AppIconPath  string `koanf:"app_icon_path"`
	TrayIconPath string `koanf:"tray_icon_path"`

	// SoundPath is the achievement sound effect. Empty disables it.
	SoundPath string `koanf:"sound_path"`

	Debug          bool `koanf:"debug"`
	StructuredLogs bool `koanf:"structured_logs"`

	IconCache IconCacheConfig `koanf:"icon_cache"`
	Download  DownloadConfig  `koanf:"download"`
}

// IconCacheConfig controls the on-disk icon byte cache.
type IconCacheConfig struct {
	Dir      string `koanf:"dir"`
	TTLHours int    `koanf:"ttl_hours"`
}

// DownloadConfig paces remote icon downloads.
type DownloadConfig struct {
	RatePerSecond   float64 `koanf:"rate_per_second"`
	Burst           int     `koanf:"burst"`
	BreakerFailures int     `koanf:"breaker_failures"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		AppName:      "Questdeck",
		AppID:        "com.questdeck.app",
		DatabasePath: "questdeck.db",
		IconCache: IconCacheConfig{
			TTLHours: 24,
		},
		Download: DownloadConfig{
			RatePerSecond:   2,
			Burst:           5,
			BreakerFailures: 5,
		},
	}
}

// Load reads configuration files in priority order (user config dir first,
// working directory last, last wins) on top of the defaults. Missing files
// are skipped.
func Load() (*Config, error) {
	k := koanf.New(".")

	for _, path := range configPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configPaths() []string {
	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "questdeck", "config.toml"))
	}
	paths = append(paths, "config.toml")
	return paths
}
