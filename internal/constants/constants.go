// Package constants provides centralized constant values used throughout Horizon.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by Horizon for organizing data.
const (
	// HorizonHome is the hidden directory name where Horizon stores all its data.
	// This directory is created in the user's home directory.
	HorizonHome = ".horizon"

	// RoadmapsDir is the directory name where roadmap documents are stored.
	RoadmapsDir = "roadmaps"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// File names used by Horizon for state persistence.
const (
	// SettingsFileName is the name of the JSON file that stores the
	// application settings singleton.
	SettingsFileName = "settings.json"

	// RoadmapFileExt is the file extension for persisted roadmap documents.
	// Each roadmap is stored as a single JSON document named <id>.json.
	RoadmapFileExt = ".json"

	// LogFileName is the name of the rotating application log file.
	LogFileName = "horizon.log"

	// ConfigFileName is the name of the YAML configuration file under
	// the Horizon home directory.
	ConfigFileName = "config.yaml"
)

// Schema version constants for persisted data.
const (
	// RoadmapSchemaVersion is the current version of the persisted Roadmap
	// document schema. Stamped on every save.
	RoadmapSchemaVersion = 1

	// ExportFormatVersion is the version tag written into export snapshots.
	// Import refuses any snapshot whose version does not match exactly.
	ExportFormatVersion = 1
)

// Timing defaults.
const (
	// DefaultAutosaveDelay is the debounce window for write-behind autosave.
	// A burst of mutations inside this window collapses to a single write.
	DefaultAutosaveDelay = 1 * time.Second

	// LockTimeout is the maximum duration to wait when acquiring a file lock.
	LockTimeout = 5 * time.Second
)

// Input limits enforced at the form/validation boundary.
const (
	// MaxTitleLength is the maximum length for roadmap and objective titles.
	MaxTitleLength = 200

	// MaxDescriptionLength is the maximum length for free-form descriptions.
	MaxDescriptionLength = 2000

	// MaxYearSpan is the maximum number of years a single roadmap may cover.
	MaxYearSpan = 20

	// MinYear and MaxYear bound the plannable year range.
	MinYear = 1970
	MaxYear = 2200
)
