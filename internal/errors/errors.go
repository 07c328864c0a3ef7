// Package errors provides centralized error handling for Horizon.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrRoadmapNotFound indicates the requested roadmap does not exist in
	// the store. Absence is a normal outcome; callers branch on it with
	// errors.Is rather than treating it as a failure.
	ErrRoadmapNotFound = errors.New("roadmap not found")

	// ErrMonthNotFound indicates the named month key is not present in the
	// open roadmap's month map.
	ErrMonthNotFound = errors.New("month not found")

	// ErrObjectiveNotFound indicates no objective with the given ID exists
	// within the named month.
	ErrObjectiveNotFound = errors.New("objective not found")

	// ErrNoRoadmapOpen indicates an operation that requires an open roadmap
	// was invoked on an empty session.
	ErrNoRoadmapOpen = errors.New("no roadmap open")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrInvalidYearRange indicates a roadmap's end year precedes its start
	// year, or a year falls outside the plannable bounds.
	ErrInvalidYearRange = errors.New("invalid year range")

	// ErrInvalidMonthKey indicates a month key string is not of the form
	// "YYYY-MM" with a month between 01 and 12.
	ErrInvalidMonthKey = errors.New("invalid month key")

	// ErrInvalidDate indicates a date string is not a valid ISO calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnsupportedVersion indicates an import snapshot carries a version
	// tag this build does not understand. Raised before any destructive step.
	ErrUnsupportedVersion = errors.New("unsupported data version")

	// ErrCorruptDocument indicates a persisted document could not be parsed.
	ErrCorruptDocument = errors.New("corrupted document")

	// ErrLockTimeout indicates a file lock could not be acquired within the
	// timeout period.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidArgument indicates a command argument could not be parsed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConfigInvalid indicates a configuration value failed validation.
	ErrConfigInvalid = errors.New("invalid configuration")
)
