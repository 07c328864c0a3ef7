package domain

import (
	"strings"
	"time"

	"github.com/mrz1836/horizon/internal/constants"
	horizonerrors "github.com/mrz1836/horizon/internal/errors"
)

// Reflection is an optional monthly retrospective written after the
// month has passed.
type Reflection struct {
	Summary string    `json:"summary"`
	Lessons []string  `json:"lessons,omitempty"`
	Rating  int       `json:"rating,omitempty"` // 1-5, 0 means unrated
	AddedAt time.Time `json:"added_at"`
}

// MonthBlock is a calendar month's container for objectives within a roadmap.
//
// Months are created lazily: a MonthBlock is only materialized when the
// first objective targeting its key is added. The timeline view synthesizes
// placeholders for months absent from the map.
type MonthBlock struct {
	// ID exists for record-keeping; the canonical lookup key within a
	// roadmap is the "YYYY-MM" month key derived from Year and Month.
	ID    string `json:"id"`
	Year  int    `json:"year"`
	Month int    `json:"month"` // 1-12

	ColorTheme string `json:"color_theme,omitempty"`

	// Objectives order is not an invariant; display-time sorting applies
	// (pinned first, then ascending start date).
	Objectives []Objective `json:"objectives"`

	Reflection *Reflection `json:"reflection,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the month block.
func (m MonthBlock) Clone() MonthBlock {
	out := m
	if m.Objectives != nil {
		out.Objectives = make([]Objective, len(m.Objectives))
		for i, o := range m.Objectives {
			out.Objectives[i] = o.Clone()
		}
	}
	if m.Reflection != nil {
		r := *m.Reflection
		if m.Reflection.Lessons != nil {
			r.Lessons = make([]string, len(m.Reflection.Lessons))
			copy(r.Lessons, m.Reflection.Lessons)
		}
		out.Reflection = &r
	}
	return out
}

// MonthPatch describes a partial update to a month block.
// Nil fields are left unchanged.
type MonthPatch struct {
	ColorTheme *string
	Objectives *[]Objective
	Reflection *Reflection
}

// Apply merges the patch into a deep copy of the month block and returns it.
func (p MonthPatch) Apply(m MonthBlock) MonthBlock {
	out := m.Clone()
	if p.ColorTheme != nil {
		out.ColorTheme = *p.ColorTheme
	}
	if p.Objectives != nil {
		objs := make([]Objective, len(*p.Objectives))
		for i, o := range *p.Objectives {
			objs[i] = o.Clone()
		}
		out.Objectives = objs
	}
	if p.Reflection != nil {
		r := *p.Reflection
		out.Reflection = &r
	}
	return out
}

// Roadmap is the top-level planning aggregate and the unit of persistence.
// Every save rewrites the entire document; there are no partial updates at
// the storage layer.
//
// Example JSON representation:
//
//	{
//	    "id": "a9f4c2e8-...",
//	    "title": "2025 Fitness",
//	    "start_year": 2025,
//	    "end_year": 2026,
//	    "months": {"2025-03": {...}},
//	    "created_at": "2025-01-01T10:00:00Z",
//	    "updated_at": "2025-03-10T18:21:09Z",
//	    "last_accessed_at": "2025-03-11T08:00:00Z",
//	    "schema_version": 1
//	}
type Roadmap struct {
	// ID is the unique identifier (UUID) for the roadmap.
	ID string `json:"id"`

	// Title is required and must be non-blank after trimming.
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// StartYear and EndYear bound the planning horizon inclusively;
	// EndYear must not precede StartYear.
	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`

	// Months maps "YYYY-MM" keys to month blocks. Keys are unique; no
	// ordering guarantee - consumers sort by parsing the key.
	Months map[string]MonthBlock `json:"months"`

	ColorTheme string `json:"color_theme,omitempty"`
	Icon       string `json:"icon,omitempty"`
	Category   string `json:"category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// LastAccessedAt is bumped whenever the roadmap is opened, independent
	// of content mutation.
	LastAccessedAt time.Time `json:"last_accessed_at"`

	// SchemaVersion indicates the version of the persisted document schema.
	SchemaVersion int `json:"schema_version"`
}

// Clone returns a deep copy of the roadmap.
func (r Roadmap) Clone() Roadmap {
	out := r
	if r.Months != nil {
		out.Months = make(map[string]MonthBlock, len(r.Months))
		for k, m := range r.Months {
			out.Months[k] = m.Clone()
		}
	}
	return out
}

// Validate checks the roadmap's own field constraints.
// It does not touch storage and reports the first violation found.
func (r Roadmap) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return horizonerrors.Wrap(horizonerrors.ErrEmptyValue, "roadmap title")
	}
	if len(r.Title) > constants.MaxTitleLength {
		return horizonerrors.Wrapf(horizonerrors.ErrValueOutOfRange, "title exceeds %d characters", constants.MaxTitleLength)
	}
	if len(r.Description) > constants.MaxDescriptionLength {
		return horizonerrors.Wrapf(horizonerrors.ErrValueOutOfRange, "description exceeds %d characters", constants.MaxDescriptionLength)
	}
	if r.EndYear < r.StartYear {
		return horizonerrors.Wrapf(horizonerrors.ErrInvalidYearRange, "end year %d precedes start year %d", r.EndYear, r.StartYear)
	}
	if r.StartYear < constants.MinYear || r.EndYear > constants.MaxYear {
		return horizonerrors.Wrapf(horizonerrors.ErrInvalidYearRange, "years must fall within %d-%d", constants.MinYear, constants.MaxYear)
	}
	if span := r.EndYear - r.StartYear + 1; span > constants.MaxYearSpan {
		return horizonerrors.Wrapf(horizonerrors.ErrInvalidYearRange, "span of %d years exceeds the %d year limit", span, constants.MaxYearSpan)
	}
	return nil
}
