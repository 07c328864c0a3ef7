package planner

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/horizon/internal/clock"
	"github.com/mrz1836/horizon/internal/domain"
	horizonerrors "github.com/mrz1836/horizon/internal/errors"
	"github.com/mrz1836/horizon/internal/session"
	"github.com/mrz1836/horizon/internal/store"
)

var plannerBase = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *clock.Mock, *store.FileStore) {
	t.Helper()

	clk := clock.NewMock(plannerBase)
	st, err := store.NewFileStore(t.TempDir(), clk, zerolog.Nop())
	require.NoError(t, err)

	svc := New(session.New(clk), st, clk, zerolog.Nop())

	return svc, clk, st
}

// openTestRoadmap creates and opens a roadmap, returning its ID.
func openTestRoadmap(t *testing.T, svc *Service) string {
	t.Helper()

	rm, err := svc.CreateRoadmap(context.Background(), RoadmapInput{
		Title:     "Fitness",
		StartYear: 2025,
		EndYear:   2026,
	})
	require.NoError(t, err)

	_, err = svc.OpenRoadmap(context.Background(), rm.ID)
	require.NoError(t, err)

	return rm.ID
}

func addTestObjective(t *testing.T, svc *Service, monthKey string) domain.Objective {
	t.Helper()

	obj, err := svc.CreateObjective(monthKey, ObjectiveInput{
		Title:     "Run a 10k",
		StartDate: "2025-03-10",
		EndDate:   "2025-03-20",
	})
	require.NoError(t, err)

	return obj
}

func TestCreateRoadmap(t *testing.T) {
	t.Run("persists with generated id and audit fields", func(t *testing.T) {
		svc, clk, st := newTestService(t)

		rm, err := svc.CreateRoadmap(context.Background(), RoadmapInput{
			Title:     "  Fitness  ",
			StartYear: 2025,
			EndYear:   2026,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, rm.ID)
		assert.Equal(t, "Fitness", rm.Title, "title is trimmed")
		assert.Equal(t, clk.Now().UTC(), rm.CreatedAt)
		assert.Equal(t, 1, rm.SchemaVersion)
		assert.NotNil(t, rm.Months)
		assert.Empty(t, rm.Months)

		stored, err := st.GetRoadmap(context.Background(), rm.ID)
		require.NoError(t, err)
		assert.Equal(t, rm.Title, stored.Title)
	})

	t.Run("rejects a blank title before persisting", func(t *testing.T) {
		svc, _, st := newTestService(t)

		_, err := svc.CreateRoadmap(context.Background(), RoadmapInput{
			Title:     "   ",
			StartYear: 2025,
			EndYear:   2026,
		})
		assert.ErrorIs(t, err, horizonerrors.ErrEmptyValue)

		all, err := st.GetAllRoadmaps(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("rejects an inverted year range", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.CreateRoadmap(context.Background(), RoadmapInput{
			Title:     "Backwards",
			StartYear: 2026,
			EndYear:   2025,
		})
		assert.ErrorIs(t, err, horizonerrors.ErrInvalidYearRange)
	})
}

func TestOpenRoadmap(t *testing.T) {
	t.Run("loads into the session and touches", func(t *testing.T) {
		svc, clk, st := newTestService(t)
		id := openTestRoadmap(t, svc)

		clk.Advance(time.Hour)
		_, err := svc.OpenRoadmap(context.Background(), id)
		require.NoError(t, err)

		assert.Equal(t, id, svc.Session().RoadmapID())

		stored, err := st.GetRoadmap(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, clk.Now().UTC(), stored.LastAccessedAt)
	})

	t.Run("unknown id records the error on the session", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.OpenRoadmap(context.Background(), "nope")
		assert.ErrorIs(t, err, horizonerrors.ErrRoadmapNotFound)
		assert.NotEmpty(t, svc.Session().Err())
	})
}

func TestCreateObjective(t *testing.T) {
	t.Run("applies defaults and computed fields", func(t *testing.T) {
		svc, clk, _ := newTestService(t)
		openTestRoadmap(t, svc)

		obj, err := svc.CreateObjective("2025-03", ObjectiveInput{
			Title:     "Run a 10k",
			StartDate: "2025-03-10",
			EndDate:   "2025-03-20",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, obj.ID)
		assert.Equal(t, domain.StatusPending, obj.Status)
		assert.Zero(t, obj.Progress)
		assert.Equal(t, domain.EnergyMedium, obj.EnergyLevel)
		assert.Equal(t, domain.PriorityMedium, obj.Priority)
		assert.Equal(t, 11, obj.Duration)
		assert.False(t, obj.IsPinned)
		assert.Equal(t, clk.Now().UTC(), obj.CreatedAt)
	})

	t.Run("pins a month-spanning objective", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		openTestRoadmap(t, svc)

		obj, err := svc.CreateObjective("2025-03", ObjectiveInput{
			Title:     "March theme",
			StartDate: "2025-03-01",
			EndDate:   "2025-03-31",
		})
		require.NoError(t, err)
		assert.True(t, obj.IsPinned)
		assert.Equal(t, 31, obj.Duration)
	})

	t.Run("materializes the month block on first objective", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		openTestRoadmap(t, svc)

		addTestObjective(t, svc, "2025-03")

		month, ok := svc.Session().Month("2025-03")
		require.True(t, ok)
		assert.Equal(t, 2025, month.Year)
		assert.Equal(t, 3, month.Month)
		assert.NotEmpty(t, month.ID)
		assert.Len(t, month.Objectives, 1)
	})

	t.Run("validation failures", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		openTestRoadmap(t, svc)

		_, err := svc.CreateObjective("2025-03", ObjectiveInput{
			Title: "  ", StartDate: "2025-03-10", EndDate: "2025-03-20",
		})
		assert.ErrorIs(t, err, horizonerrors.ErrEmptyValue)

		_, err = svc.CreateObjective("bad-key", ObjectiveInput{
			Title: "x", StartDate: "2025-03-10", EndDate: "2025-03-20",
		})
		assert.ErrorIs(t, err, horizonerrors.ErrInvalidMonthKey)

		_, err = svc.CreateObjective("2025-03", ObjectiveInput{
			Title: "x", StartDate: "not-a-date", EndDate: "2025-03-20",
		})
		assert.ErrorIs(t, err, horizonerrors.ErrInvalidDate)

		_, err = svc.CreateObjective("2025-03", ObjectiveInput{
			Title: "x", StartDate: "2025-03-10", EndDate: "2025-03-20",
			EnergyLevel: "super",
		})
		assert.ErrorIs(t, err, horizonerrors.ErrInvalidArgument)
	})

	t.Run("requires an open roadmap", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.CreateObjective("2025-03", ObjectiveInput{
			Title: "x", StartDate: "2025-03-10", EndDate: "2025-03-20",
		})
		assert.ErrorIs(t, err, horizonerrors.ErrNoRoadmapOpen)
	})
}

func TestUpdateObjective(t *testing.T) {
	t.Run("date edits recompute duration and pin", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		openTestRoadmap(t, svc)
		obj := addTestObjective(t, svc, "2025-03")

		start := "2025-03-01"
		end := "2025-03-31"
		require.NoError(t, svc.UpdateObjective("2025-03", obj.ID, domain.ObjectivePatch{
			StartDate: &start,
			EndDate:   &end,
		}))

		month, _ := svc.Session().Month("2025-03")
		got := month.Objectives[0]
		assert.Equal(t, 31, got.Duration)
		assert.True(t, got.IsPinned)
	})

	t.Run("single-sided date edit merges with the stored date", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		openTestRoadmap(t, svc)
		obj := addTestObjective(t, svc, "2025-03") // 2025-03-10 .. 2025-03-20

		end := "2025-03-25"
		require.NoError(t, svc.UpdateObjective("2025-03", obj.ID, domain.ObjectivePatch{
			EndDate: &end,
		}))

		month, _ := svc.Session().Month("2025-03")
		got := month.Objectives[0]
		assert.Equal(t, "2025-03-10", got.StartDate)
		assert.Equal(t, 16, got.Duration)
	})

	t.Run("non-date edits leave duration and pin alone", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		openTestRoadmap(t, svc)
		obj := addTestObjective(t, svc, "2025-03")

		notes := "track pace weekly"
		require.NoError(t, svc.UpdateObjective("2025-03", obj.ID, domain.ObjectivePatch{
			Notes: &notes,
		}))

		month, _ := svc.Session().Month("2025-03")
		got := month.Objectives[0]
		assert.Equal(t, "track pace weekly", got.Notes)
		assert.Equal(t, 11, got.Duration)
	})

	t.Run("date edit on a missing objective fails", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		openTestRoadmap(t, svc)
		addTestObjective(t, svc, "2025-03")

		start := "2025-03-02"
		err := svc.UpdateObjective("2025-03", "missing", domain.ObjectivePatch{StartDate: &start})
		assert.ErrorIs(t, err, horizonerrors.ErrObjectiveNotFound)
	})
}

func TestCompleteObjective(t *testing.T) {
	svc, clk, _ := newTestService(t)
	openTestRoadmap(t, svc)
	obj := addTestObjective(t, svc, "2025-03")

	clk.Advance(time.Hour)
	require.NoError(t, svc.CompleteObjective("2025-03", obj.ID))

	month, _ := svc.Session().Month("2025-03")
	got := month.Objectives[0]
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, clk.Now().UTC(), *got.CompletedAt)
}

func TestUpdateProgress(t *testing.T) {
	tests := []struct {
		name          string
		progress      int
		wantProgress  int
		wantCompleted bool
	}{
		{name: "in range", progress: 40, wantProgress: 40},
		{name: "clamped below", progress: -5, wantProgress: 0},
		{name: "clamped above completes", progress: 150, wantProgress: 100, wantCompleted: true},
		{name: "exactly one hundred completes", progress: 100, wantProgress: 100, wantCompleted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)
			openTestRoadmap(t, svc)
			obj := addTestObjective(t, svc, "2025-03")

			require.NoError(t, svc.UpdateProgress("2025-03", obj.ID, tt.progress))

			month, _ := svc.Session().Month("2025-03")
			got := month.Objectives[0]
			assert.Equal(t, tt.wantProgress, got.Progress)
			if tt.wantCompleted {
				assert.Equal(t, domain.StatusCompleted, got.Status)
				assert.NotNil(t, got.CompletedAt)
			} else {
				assert.Equal(t, domain.StatusPending, got.Status)
				assert.Nil(t, got.CompletedAt)
			}
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	t.Run("completed snaps progress and stamps", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		openTestRoadmap(t, svc)
		obj := addTestObjective(t, svc, "2025-03")

		require.NoError(t, svc.UpdateStatus("2025-03", obj.ID, domain.StatusCompleted))

		month, _ := svc.Session().Month("2025-03")
		got := month.Objectives[0]
		assert.Equal(t, 100, got.Progress)
		assert.NotNil(t, got.CompletedAt)
	})

	t.Run("leaving completed keeps progress and stamp", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		openTestRoadmap(t, svc)
		obj := addTestObjective(t, svc, "2025-03")
		require.NoError(t, svc.CompleteObjective("2025-03", obj.ID))

		require.NoError(t, svc.UpdateStatus("2025-03", obj.ID, domain.StatusInProgress))

		month, _ := svc.Session().Month("2025-03")
		got := month.Objectives[0]
		assert.Equal(t, domain.StatusInProgress, got.Status)
		assert.Equal(t, 100, got.Progress)
		assert.NotNil(t, got.CompletedAt)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		openTestRoadmap(t, svc)
		obj := addTestObjective(t, svc, "2025-03")

		err := svc.UpdateStatus("2025-03", obj.ID, "done-ish")
		assert.ErrorIs(t, err, horizonerrors.ErrInvalidArgument)
	})
}

func TestMoveObjectiveThroughService(t *testing.T) {
	svc, _, _ := newTestService(t)
	openTestRoadmap(t, svc)
	obj := addTestObjective(t, svc, "2025-03")

	require.NoError(t, svc.MoveObjective(obj.ID, "2025-03", "2025-04"))

	source, _ := svc.Session().Month("2025-03")
	assert.Empty(t, source.Objectives)
	target, ok := svc.Session().Month("2025-04")
	require.True(t, ok)
	assert.Len(t, target.Objectives, 1)
}

func TestFlush(t *testing.T) {
	t.Run("persists session mutations", func(t *testing.T) {
		svc, _, st := newTestService(t)
		id := openTestRoadmap(t, svc)
		obj := addTestObjective(t, svc, "2025-03")
		require.True(t, svc.Session().Dirty())

		require.NoError(t, svc.Flush(context.Background()))
		assert.False(t, svc.Session().Dirty())

		stored, err := st.GetRoadmap(context.Background(), id)
		require.NoError(t, err)
		require.Len(t, stored.Months["2025-03"].Objectives, 1)
		assert.Equal(t, obj.ID, stored.Months["2025-03"].Objectives[0].ID)
	})

	t.Run("fails without an open roadmap", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		err := svc.Flush(context.Background())
		assert.ErrorIs(t, err, horizonerrors.ErrNoRoadmapOpen)
	})
}
