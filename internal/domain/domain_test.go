package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	horizonerrors "github.com/mrz1836/horizon/internal/errors"
)

func TestEnumValidity(t *testing.T) {
	t.Run("energy levels", func(t *testing.T) {
		for _, e := range ValidEnergyLevels() {
			assert.True(t, e.IsValid(), "energy level %q should be valid", e)
		}
		assert.False(t, EnergyLevel("extreme").IsValid())
		assert.False(t, EnergyLevel("").IsValid())
	})

	t.Run("priorities", func(t *testing.T) {
		for _, p := range ValidPriorities() {
			assert.True(t, p.IsValid(), "priority %q should be valid", p)
		}
		assert.False(t, Priority("asap").IsValid())
	})

	t.Run("statuses", func(t *testing.T) {
		for _, s := range ValidObjectiveStatuses() {
			assert.True(t, s.IsValid(), "status %q should be valid", s)
		}
		assert.False(t, ObjectiveStatus("done").IsValid())
	})
}

func TestObjectiveClone(t *testing.T) {
	completedAt := time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC)
	orig := Objective{
		ID:          "obj-1",
		Title:       "Ship feature",
		Tags:        []string{"work", "q1"},
		Subtasks:    []Subtask{{ID: "s1", Title: "write tests"}},
		CompletedAt: &completedAt,
	}

	clone := orig.Clone()
	clone.Tags[0] = "mutated"
	clone.Subtasks[0].Title = "mutated"
	*clone.CompletedAt = clone.CompletedAt.Add(time.Hour)

	assert.Equal(t, "work", orig.Tags[0])
	assert.Equal(t, "write tests", orig.Subtasks[0].Title)
	assert.Equal(t, completedAt, *orig.CompletedAt)
}

func TestObjectivePatchApply(t *testing.T) {
	orig := Objective{
		ID:       "obj-1",
		Title:    "Original",
		Progress: 40,
		Status:   StatusInProgress,
		Tags:     []string{"a"},
	}

	newTitle := "Patched"
	newProgress := 75
	patch := ObjectivePatch{Title: &newTitle, Progress: &newProgress}

	patched := patch.Apply(orig)

	assert.Equal(t, "Patched", patched.Title)
	assert.Equal(t, 75, patched.Progress)
	assert.Equal(t, StatusInProgress, patched.Status, "unset fields stay put")

	// Receiver untouched.
	assert.Equal(t, "Original", orig.Title)
	assert.Equal(t, 40, orig.Progress)
}

func TestObjectivePatchTouchesDates(t *testing.T) {
	start := "2025-03-01"
	assert.True(t, ObjectivePatch{StartDate: &start}.TouchesDates())
	assert.True(t, ObjectivePatch{EndDate: &start}.TouchesDates())
	assert.False(t, ObjectivePatch{}.TouchesDates())
}

func TestMonthBlockClone(t *testing.T) {
	m := MonthBlock{
		ID:         "m1",
		Year:       2025,
		Month:      3,
		Objectives: []Objective{{ID: "o1", Tags: []string{"x"}}},
		Reflection: &Reflection{Summary: "good month", Lessons: []string{"rest more"}},
	}

	clone := m.Clone()
	clone.Objectives[0].Tags[0] = "mutated"
	clone.Reflection.Lessons[0] = "mutated"

	assert.Equal(t, "x", m.Objectives[0].Tags[0])
	assert.Equal(t, "rest more", m.Reflection.Lessons[0])
}

func TestRoadmapClone(t *testing.T) {
	r := Roadmap{
		ID:    "rm-1",
		Title: "Plan",
		Months: map[string]MonthBlock{
			"2025-03": {Year: 2025, Month: 3, Objectives: []Objective{{ID: "o1"}}},
		},
	}

	clone := r.Clone()
	month := clone.Months["2025-03"]
	month.Objectives[0].Title = "mutated"
	clone.Months["2025-04"] = MonthBlock{Year: 2025, Month: 4}

	assert.Empty(t, r.Months["2025-03"].Objectives[0].Title)
	assert.Len(t, r.Months, 1)
}

func TestRoadmapValidate(t *testing.T) {
	valid := Roadmap{Title: "2025 Plan", StartYear: 2025, EndYear: 2026}

	t.Run("valid roadmap", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	t.Run("blank title", func(t *testing.T) {
		r := valid
		r.Title = "   "
		assert.ErrorIs(t, r.Validate(), horizonerrors.ErrEmptyValue)
	})

	t.Run("end year before start year", func(t *testing.T) {
		r := valid
		r.StartYear, r.EndYear = 2026, 2025
		assert.ErrorIs(t, r.Validate(), horizonerrors.ErrInvalidYearRange)
	})

	t.Run("year out of bounds", func(t *testing.T) {
		r := valid
		r.StartYear, r.EndYear = 1800, 2025
		assert.ErrorIs(t, r.Validate(), horizonerrors.ErrInvalidYearRange)
	})

	t.Run("span too wide", func(t *testing.T) {
		r := valid
		r.StartYear, r.EndYear = 2025, 2100
		assert.ErrorIs(t, r.Validate(), horizonerrors.ErrInvalidYearRange)
	})
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, ThemeAuto, s.Theme)
	assert.Equal(t, ViewTimeline, s.DefaultView)
	assert.Equal(t, 1, s.FirstDayOfWeek)
	assert.False(t, s.ShowWeekNumbers)
}

func TestSettingsValidate(t *testing.T) {
	base := DefaultSettings()

	t.Run("bad theme", func(t *testing.T) {
		s := base
		s.Theme = "sepia"
		assert.ErrorIs(t, s.Validate(), horizonerrors.ErrValueOutOfRange)
	})

	t.Run("bad first day of week", func(t *testing.T) {
		s := base
		s.FirstDayOfWeek = 3
		assert.ErrorIs(t, s.Validate(), horizonerrors.ErrValueOutOfRange)
	})

	t.Run("empty date format", func(t *testing.T) {
		s := base
		s.DateFormat = ""
		assert.ErrorIs(t, s.Validate(), horizonerrors.ErrValueOutOfRange)
	})
}
