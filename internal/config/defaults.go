package config

import (
	"github.com/mrz1836/horizon/internal/constants"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// the config file, environment variables, and CLI flags.
func DefaultConfig() *Config {
	return &Config{
		// Home: empty means ~/.horizon, resolved by the store.
		Home: "",

		// Color: "auto" follows the terminal and NO_COLOR.
		Color: "auto",

		Autosave: AutosaveConfig{
			// Enabled: the write-behind contract is the default mode;
			// disable for strictly explicit saves.
			Enabled: true,

			// Delay: one second collapses a typing burst into one write
			// without leaving changes unsaved for long.
			Delay: constants.DefaultAutosaveDelay,
		},
		Log: LogConfig{
			// Level: info keeps the file useful without debug noise.
			Level: "info",

			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}
