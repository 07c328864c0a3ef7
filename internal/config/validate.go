package config

import (
	"time"

	"github.com/mrz1836/horizon/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - Color must be "auto", "always", or "never"
//   - Autosave delay must be between 100ms and 1 minute
//   - Log level must be a known zerolog level
//   - Log rotation sizes and counts must not be negative
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.Wrap(errors.ErrConfigInvalid, "config is nil")
	}

	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return errors.Wrapf(errors.ErrConfigInvalid,
			"color must be auto, always, or never, got %q", cfg.Color)
	}

	if err := validateAutosaveConfig(&cfg.Autosave); err != nil {
		return err
	}

	return validateLogConfig(&cfg.Log)
}

func validateAutosaveConfig(cfg *AutosaveConfig) error {
	minDelay := 100 * time.Millisecond
	maxDelay := 1 * time.Minute
	if cfg.Delay < minDelay || cfg.Delay > maxDelay {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"autosave.delay must be between %s and %s, got %s",
			minDelay, maxDelay, cfg.Delay)
	}

	return nil
}

func validateLogConfig(cfg *LogConfig) error {
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Wrapf(errors.ErrConfigInvalid,
			"log.level must be debug, info, warn, or error, got %q", cfg.Level)
	}

	if cfg.MaxSizeMB <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"log.max_size_mb must be positive, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups < 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"log.max_backups cannot be negative, got %d", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays < 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"log.max_age_days cannot be negative, got %d", cfg.MaxAgeDays)
	}

	return nil
}
