package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/horizon/internal/domain"
	horizonerrors "github.com/mrz1836/horizon/internal/errors"
)

func TestExportData(t *testing.T) {
	s, clk := setupTestStore(t)
	ctx := context.Background()

	_, err := s.SaveRoadmap(ctx, testRoadmap("rm-1", "Exported"))
	require.NoError(t, err)

	data, err := s.ExportData(ctx)
	require.NoError(t, err)

	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(data, &snapshot))
	assert.Equal(t, 1, snapshot.Version)
	require.Len(t, snapshot.Roadmaps, 1)
	assert.Equal(t, "Exported", snapshot.Roadmaps[0].Title)
	assert.Equal(t, domain.DefaultSettings(), snapshot.Settings)
	assert.Equal(t, clk.Now().UTC(), snapshot.LastExport)
}

func TestImportExportRoundTrip(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := s.SaveRoadmap(ctx, testRoadmap("rm-1", "One"))
	require.NoError(t, err)
	_, err = s.SaveRoadmap(ctx, testRoadmap("rm-2", "Two"))
	require.NoError(t, err)
	settings := domain.DefaultSettings()
	settings.Theme = domain.ThemeDark
	require.NoError(t, s.SaveSettings(ctx, settings))

	before, err := s.GetAllRoadmaps(ctx)
	require.NoError(t, err)

	data, err := s.ExportData(ctx)
	require.NoError(t, err)

	require.NoError(t, s.ImportData(ctx, data))

	after, err := s.GetAllRoadmaps(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "round trip must preserve roadmaps exactly")

	gotSettings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings, gotSettings)
}

func TestImportDataVersionGuard(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := s.SaveRoadmap(ctx, testRoadmap("rm-keep", "Survivor"))
	require.NoError(t, err)

	bad := []byte(`{"version": 2, "roadmaps": [], "settings": {}}`)
	err = s.ImportData(ctx, bad)
	assert.ErrorIs(t, err, horizonerrors.ErrUnsupportedVersion)

	// Existing data must be untouched on the failure path.
	all, err := s.GetAllRoadmaps(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "rm-keep", all[0].ID)
}

func TestImportDataRejectsGarbage(t *testing.T) {
	s, _ := setupTestStore(t)
	err := s.ImportData(context.Background(), []byte("not json at all"))
	assert.ErrorIs(t, err, horizonerrors.ErrCorruptDocument)
}

func TestImportDataReplacesExisting(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := s.SaveRoadmap(ctx, testRoadmap("rm-old", "Old"))
	require.NoError(t, err)

	snapshot := Snapshot{
		Version:  1,
		Roadmaps: []*domain.Roadmap{testRoadmap("rm-new", "New")},
		Settings: domain.DefaultSettings(),
	}
	data, err := json.Marshal(&snapshot)
	require.NoError(t, err)

	require.NoError(t, s.ImportData(ctx, data))

	all, err := s.GetAllRoadmaps(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "rm-new", all[0].ID, "import replaces, never merges")
}

func TestClearAllData(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := s.SaveRoadmap(ctx, testRoadmap("rm-1", "Doomed"))
	require.NoError(t, err)
	require.NoError(t, s.SaveSettings(ctx, domain.DefaultSettings()))

	require.NoError(t, s.ClearAllData(ctx))

	all, err := s.GetAllRoadmaps(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// Settings fall back to defaults after the wipe.
	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)

	// Clearing an already-empty store succeeds.
	require.NoError(t, s.ClearAllData(ctx))
}
