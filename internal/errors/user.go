package errors

import "errors"

// ErrorInfo pairs a short user-facing message with a suggested next action.
// The presentation layer prints these verbatim; sentinel errors stay terse
// and lowercase for wrapping, while these are complete sentences.
type ErrorInfo struct {
	Message string
	Action  string
}

// userInfo maps sentinel errors to user-facing guidance.
var userInfo = map[error]ErrorInfo{ //nolint:gochecknoglobals // Read-only lookup table
	ErrRoadmapNotFound: {
		Message: "That roadmap doesn't exist.",
		Action:  "Run 'horizon roadmap list' to see available roadmaps.",
	},
	ErrMonthNotFound: {
		Message: "That month isn't part of this roadmap yet.",
		Action:  "Months are created when their first objective is added.",
	},
	ErrObjectiveNotFound: {
		Message: "No objective with that ID was found in the given month.",
		Action:  "Run 'horizon view' to see objectives and their IDs.",
	},
	ErrNoRoadmapOpen: {
		Message: "No roadmap is currently open.",
		Action:  "Open one with 'horizon roadmap open <id>'.",
	},
	ErrEmptyValue: {
		Message: "A required field was left empty.",
		Action:  "Provide a non-empty value and try again.",
	},
	ErrInvalidYearRange: {
		Message: "The roadmap's year range is invalid.",
		Action:  "The end year must not precede the start year.",
	},
	ErrInvalidMonthKey: {
		Message: "Month keys must look like 2025-03.",
		Action:  "Use the YYYY-MM format with a month from 01 to 12.",
	},
	ErrUnsupportedVersion: {
		Message: "This backup file was created by an incompatible version.",
		Action:  "Your existing data has not been touched.",
	},
	ErrLockTimeout: {
		Message: "Another horizon process is using the data directory.",
		Action:  "Wait for it to finish, or check for a stale process.",
	},
	ErrCorruptDocument: {
		Message: "A stored document could not be read.",
		Action:  "Restore from a previous export if you have one.",
	},
}

// UserMessage returns a user-facing message for the error.
// Falls back to the raw error text when no mapping exists.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for sentinel, info := range userInfo {
		if errors.Is(err, sentinel) {
			return info.Message
		}
	}
	return err.Error()
}

// Actionable returns the user-facing message plus a suggested action.
// The action is empty when no mapping exists for the error.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	for sentinel, info := range userInfo {
		if errors.Is(err, sentinel) {
			return info.Message, info.Action
		}
	}
	return err.Error(), ""
}
