// Package tui provides terminal rendering for Horizon: the timeline view,
// roadmap tables, and styled command output.
//
// All colors use AdaptiveColor for light/dark terminal support. Status
// displays keep triple redundancy (icon + color + text) so no information
// is lost with colors disabled. Call CheckNoColor() at the start of
// commands to respect the NO_COLOR environment variable.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mrz1836/horizon/internal/domain"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for the current month, links, and primary accents.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for completed objectives.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for blocked objectives and attention states.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for urgent priorities and errors.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for past months, cancelled objectives, and
	// secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies dim/faint formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// StatusColors returns the semantic color for each objective status.
func StatusColors() map[domain.ObjectiveStatus]lipgloss.AdaptiveColor {
	return map[domain.ObjectiveStatus]lipgloss.AdaptiveColor{
		domain.StatusPending:    ColorMuted,
		domain.StatusInProgress: ColorPrimary,
		domain.StatusCompleted:  ColorSuccess,
		domain.StatusCancelled:  ColorMuted,
		domain.StatusBlocked:    ColorWarning,
	}
}

// StatusIcon returns the icon for an objective status.
// Icon + color + text are kept together for accessibility.
func StatusIcon(status domain.ObjectiveStatus) string {
	icons := map[domain.ObjectiveStatus]string{
		domain.StatusPending:    "○", // Empty circle - not started
		domain.StatusInProgress: "●", // Filled circle - active
		domain.StatusCompleted:  "✓", // Checkmark - done
		domain.StatusCancelled:  "✗", // X mark - abandoned
		domain.StatusBlocked:    "⚠", // Warning - stuck
	}
	if icon, ok := icons[status]; ok {
		return icon
	}
	return "?"
}

// PriorityColors returns the semantic color for each priority.
func PriorityColors() map[domain.Priority]lipgloss.AdaptiveColor {
	return map[domain.Priority]lipgloss.AdaptiveColor{
		domain.PriorityLow:    ColorMuted,
		domain.PriorityMedium: ColorPrimary,
		domain.PriorityHigh:   ColorWarning,
		domain.PriorityUrgent: ColorError,
	}
}

// PriorityLabel returns a short bracketed label for non-default priorities,
// or "" for medium (the default, left unmarked to reduce noise).
func PriorityLabel(p domain.Priority) string {
	switch p {
	case domain.PriorityLow:
		return "[low]"
	case domain.PriorityHigh:
		return "[high]"
	case domain.PriorityUrgent:
		return "[urgent]"
	default:
		return ""
	}
}

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
}

// NewOutputStyles creates common output styles using AdaptiveColor for
// light/dark terminal support.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Info:    lipgloss.NewStyle().Foreground(ColorPrimary),
		Dim:     lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// CheckNoColor respects the NO_COLOR environment variable.
// Call this at the start of commands that output styled text.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns true if the terminal supports colors.
// Returns false if NO_COLOR is set (any value including empty string) or
// TERM=dumb. This follows the NO_COLOR standard: https://no-color.org/
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return true
}
