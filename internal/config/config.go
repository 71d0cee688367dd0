// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package config loads arc-bookshelf settings from defaults, an optional
// YAML file and ARC_BOOKSHELF_* environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mtreilly/arc-bookshelf/internal/catalog"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// ARC_BOOKSHELF_LIMITS_PAGES_MAX.
const EnvPrefix = "ARC_BOOKSHELF"

// Storage backends.
const (
	StorageFile   = "file"
	StorageMemory = "memory"
)

// Config holds all application settings.
type Config struct {
	Storage     string        `mapstructure:"storage"`
	CatalogPath string        `mapstructure:"catalog_path"`
	Compress    bool          `mapstructure:"compress"`
	Limits      LimitsConfig  `mapstructure:"limits"`
	Log         LoggingConfig `mapstructure:"log"`

	// File is the config file that was read, empty if none.
	File string `mapstructure:"-"`
}

// LimitsConfig bounds record fields.
type LimitsConfig struct {
	TitleMax int `mapstructure:"title_max"`
	PagesMin int `mapstructure:"pages_min"`
	PagesMax int `mapstructure:"pages_max"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format is text or json.
	Format string `mapstructure:"format"`
	// File, when set, sends logs to a rotating file instead of stderr.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// CatalogLimits converts the configured limits for the catalog package.
func (c *Config) CatalogLimits() catalog.Limits {
	return catalog.Limits{
		TitleMax: c.Limits.TitleMax,
		PagesMin: c.Limits.PagesMin,
		PagesMax: c.Limits.PagesMax,
	}
}

// DefaultCatalogPath returns ~/.arc/bookshelf/catalog.dat, or catalog.dat in
// the working directory when the home directory is unknown.
func DefaultCatalogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "catalog.dat"
	}
	return filepath.Join(home, ".arc", "bookshelf", "catalog.dat")
}

func setDefaults(v *viper.Viper) {
	lim := catalog.DefaultLimits()
	v.SetDefault("storage", StorageFile)
	v.SetDefault("catalog_path", DefaultCatalogPath())
	v.SetDefault("compress", true)
	v.SetDefault("limits.title_max", lim.TitleMax)
	v.SetDefault("limits.pages_min", lim.PagesMin)
	v.SetDefault("limits.pages_max", lim.PagesMax)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
}

// Load reads configuration. path names an explicit config file; when empty,
// $ARC_BOOKSHELF_CONFIG is tried, then config.yaml under the user config
// directory. A missing implicit file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config load: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "arc-bookshelf"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config load: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage {
	case StorageFile:
		if strings.TrimSpace(c.CatalogPath) == "" {
			errs = append(errs, errors.New("catalog_path is required for file storage"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("storage must be %q or %q, got %q", StorageFile, StorageMemory, c.Storage))
	}

	if c.Limits.TitleMax < 1 {
		errs = append(errs, fmt.Errorf("limits.title_max must be positive, got %d", c.Limits.TitleMax))
	}
	if c.Limits.PagesMin < 1 {
		errs = append(errs, fmt.Errorf("limits.pages_min must be positive, got %d", c.Limits.PagesMin))
	}
	if c.Limits.PagesMax < c.Limits.PagesMin {
		errs = append(errs, fmt.Errorf("limits.pages_max (%d) must not be below limits.pages_min (%d)", c.Limits.PagesMax, c.Limits.PagesMin))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
