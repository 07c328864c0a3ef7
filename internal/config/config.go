// Package config provides configuration management for Horizon with layered
// precedence.
//
// Configuration sources are loaded in the following order (highest precedence
// first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (HORIZON_* prefix)
//  3. Global config (~/.horizon/config.yaml)
//  4. Built-in defaults
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for Horizon.
type Config struct {
	// Home overrides the data directory. Empty means ~/.horizon.
	Home string `yaml:"home" mapstructure:"home"`

	// Color controls ANSI color output: "auto", "always", or "never".
	Color string `yaml:"color" mapstructure:"color"`

	// Autosave contains settings for the write-behind autosaver.
	Autosave AutosaveConfig `yaml:"autosave" mapstructure:"autosave"`

	// Log contains settings for the log file and verbosity.
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// AutosaveConfig contains settings for the debounced autosaver.
type AutosaveConfig struct {
	// Enabled turns the autosaver on. When false, mutations persist only
	// on explicit flushes (each CLI command flushes before exiting).
	// Default: true
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Delay is the quiet period after the last mutation before a save.
	// Default: 1s, Valid range: 100ms-1m
	Delay time.Duration `yaml:"delay" mapstructure:"delay"`
}

// LogConfig contains settings for the rotating log file.
type LogConfig struct {
	// Level is the minimum level written to the log file
	// ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level" mapstructure:"level"`

	// MaxSizeMB is the size at which the log file rotates.
	// Default: 10
	MaxSizeMB int `yaml:"max_size_mb" mapstructure:"max_size_mb"`

	// MaxBackups is the number of rotated files to keep.
	// Default: 3
	MaxBackups int `yaml:"max_backups" mapstructure:"max_backups"`

	// MaxAgeDays is the number of days to keep rotated files.
	// Default: 30
	MaxAgeDays int `yaml:"max_age_days" mapstructure:"max_age_days"`
}
