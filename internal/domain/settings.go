package domain

import (
	horizonerrors "github.com/mrz1836/horizon/internal/errors"
)

// wrapInvalid reports an out-of-range settings field.
func wrapInvalid(field, detail string) error {
	return horizonerrors.Wrapf(horizonerrors.ErrValueOutOfRange, "%s: %s", field, detail)
}

// Theme selects the UI color scheme.
type Theme string

// Theme constants define the valid color schemes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// IsValid checks if the theme is a valid value.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeAuto:
		return true
	default:
		return false
	}
}

// View selects the default presentation of a roadmap.
type View string

// View constants define the valid default views.
const (
	ViewTimeline View = "timeline"
	ViewList     View = "list"
)

// IsValid checks if the view is a valid value.
func (v View) IsValid() bool {
	switch v {
	case ViewTimeline, ViewList:
		return true
	default:
		return false
	}
}

// AppSettings is the user-preference singleton, independent of any roadmap.
// A single record is persisted under a fixed key; when absent, defaults apply.
type AppSettings struct {
	Theme       Theme `json:"theme"`
	DefaultView View  `json:"default_view"`

	// FirstDayOfWeek is 0 for Sunday, 1 for Monday.
	FirstDayOfWeek int `json:"first_day_of_week"`

	// DateFormat is a Go reference-time layout used for date display.
	DateFormat string `json:"date_format"`

	ShowWeekNumbers bool `json:"show_week_numbers"`
}

// DefaultSettings returns the hard-coded settings used when no record
// has been persisted yet.
func DefaultSettings() AppSettings {
	return AppSettings{
		Theme:           ThemeAuto,
		DefaultView:     ViewTimeline,
		FirstDayOfWeek:  1,
		DateFormat:      "Jan 2, 2006",
		ShowWeekNumbers: false,
	}
}

// Validate checks the settings' field constraints.
func (s AppSettings) Validate() error {
	if !s.Theme.IsValid() {
		return wrapInvalid("theme", string(s.Theme))
	}
	if !s.DefaultView.IsValid() {
		return wrapInvalid("default view", string(s.DefaultView))
	}
	if s.FirstDayOfWeek != 0 && s.FirstDayOfWeek != 1 {
		return wrapInvalid("first day of week", "must be 0 (Sunday) or 1 (Monday)")
	}
	if s.DateFormat == "" {
		return wrapInvalid("date format", "empty")
	}
	return nil
}
