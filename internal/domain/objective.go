// Package domain provides shared domain types for the Horizon timeline planner.
// These types are used across all internal packages to ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case per architecture requirements.
package domain

import (
	"time"
)

// EnergyLevel represents the effort an objective demands.
// It helps users balance their capacity across a month at a glance.
type EnergyLevel string

// EnergyLevel constants define the valid effort tiers for objectives.
const (
	EnergyLow      EnergyLevel = "low"
	EnergyMedium   EnergyLevel = "medium"
	EnergyHigh     EnergyLevel = "high"
	EnergyCritical EnergyLevel = "critical"
)

// ValidEnergyLevels returns all valid energy level values.
func ValidEnergyLevels() []EnergyLevel {
	return []EnergyLevel{EnergyLow, EnergyMedium, EnergyHigh, EnergyCritical}
}

// IsValid checks if the energy level is a valid value.
func (e EnergyLevel) IsValid() bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh, EnergyCritical:
		return true
	default:
		return false
	}
}

// Priority orders objectives competing for attention within one timeframe.
type Priority string

// Priority constants define the valid priority tiers for objectives.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ValidPriorities returns all valid priority values.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// IsValid checks if the priority is a valid value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// ObjectiveStatus tracks the lifecycle of an objective from conception
// through completion.
type ObjectiveStatus string

// ObjectiveStatus constants define the valid lifecycle states.
const (
	StatusPending    ObjectiveStatus = "pending"
	StatusInProgress ObjectiveStatus = "in-progress"
	StatusCompleted  ObjectiveStatus = "completed"
	StatusCancelled  ObjectiveStatus = "cancelled"
	StatusBlocked    ObjectiveStatus = "blocked"
)

// ValidObjectiveStatuses returns all valid status values.
func ValidObjectiveStatuses() []ObjectiveStatus {
	return []ObjectiveStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusBlocked}
}

// IsValid checks if the status is a valid value.
func (s ObjectiveStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusBlocked:
		return true
	default:
		return false
	}
}

// Subtask is a single checklist item for breaking down a complex objective.
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Objective is the core planning unit: something the user wants to
// accomplish within a specific date range inside one month.
//
// An objective is exclusively owned by exactly one MonthBlock at a time;
// moving it between months is a single atomic session operation.
type Objective struct {
	// ID is the unique identifier (UUID), generated at creation and stable
	// for the object's lifetime.
	ID string `json:"id"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// StartDate and EndDate are ISO calendar dates (YYYY-MM-DD) within a
	// single month. Duration is the inclusive day count (end - start + 1).
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Duration  int    `json:"duration"`

	EnergyLevel EnergyLevel     `json:"energy_level"`
	Priority    Priority        `json:"priority"`
	Status      ObjectiveStatus `json:"status"`

	// Tags order is irrelevant for identity but preserved for display.
	Tags     []string `json:"tags"`
	Category string   `json:"category,omitempty"`
	Notes    string   `json:"notes,omitempty"`

	// Progress is 0-100. Progress of 100 implies Status == completed and a
	// non-nil CompletedAt; the planner service enforces the invariant.
	Progress int `json:"progress"`

	Subtasks []Subtask `json:"subtasks,omitempty"`

	// IsPinned marks objectives that span essentially the whole month;
	// pinned objectives sort ahead of others in a month's display.
	IsPinned bool `json:"is_pinned"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Clone returns a deep copy of the objective.
func (o Objective) Clone() Objective {
	out := o
	if o.Tags != nil {
		out.Tags = make([]string, len(o.Tags))
		copy(out.Tags, o.Tags)
	}
	if o.Subtasks != nil {
		out.Subtasks = make([]Subtask, len(o.Subtasks))
		copy(out.Subtasks, o.Subtasks)
	}
	if o.CompletedAt != nil {
		completedAt := *o.CompletedAt
		out.CompletedAt = &completedAt
	}
	return out
}

// ObjectivePatch describes a partial update to an objective.
// Nil fields are left unchanged; Apply merges set fields into a copy.
type ObjectivePatch struct {
	Title       *string
	Description *string
	StartDate   *string
	EndDate     *string
	Duration    *int
	EnergyLevel *EnergyLevel
	Priority    *Priority
	Status      *ObjectiveStatus
	Tags        *[]string
	Category    *string
	Notes       *string
	Progress    *int
	Subtasks    *[]Subtask
	IsPinned    *bool
	CompletedAt *time.Time
}

// TouchesDates reports whether the patch changes the objective's date range.
func (p ObjectivePatch) TouchesDates() bool {
	return p.StartDate != nil || p.EndDate != nil
}

// Apply merges the patch into a deep copy of the objective and returns it.
// The receiver is not modified. UpdatedAt is the caller's responsibility.
func (p ObjectivePatch) Apply(o Objective) Objective {
	out := o.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.StartDate != nil {
		out.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		out.EndDate = *p.EndDate
	}
	if p.Duration != nil {
		out.Duration = *p.Duration
	}
	if p.EnergyLevel != nil {
		out.EnergyLevel = *p.EnergyLevel
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Tags != nil {
		tags := make([]string, len(*p.Tags))
		copy(tags, *p.Tags)
		out.Tags = tags
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.Progress != nil {
		out.Progress = *p.Progress
	}
	if p.Subtasks != nil {
		subs := make([]Subtask, len(*p.Subtasks))
		copy(subs, *p.Subtasks)
		out.Subtasks = subs
	}
	if p.IsPinned != nil {
		out.IsPinned = *p.IsPinned
	}
	if p.CompletedAt != nil {
		completedAt := *p.CompletedAt
		out.CompletedAt = &completedAt
	}
	return out
}
