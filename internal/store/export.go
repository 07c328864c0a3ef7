package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mrz1836/horizon/internal/constants"
	"github.com/mrz1836/horizon/internal/ctxutil"
	"github.com/mrz1836/horizon/internal/domain"
	horizonerrors "github.com/mrz1836/horizon/internal/errors"
)

// Snapshot is the export/import file format: a complete, self-describing
// copy of all roadmaps plus settings.
//
// Example:
//
//	{
//	    "version": 1,
//	    "roadmaps": [...],
//	    "settings": {...},
//	    "last_export": "2025-03-15T12:00:00Z"
//	}
type Snapshot struct {
	Version    int                `json:"version"`
	Roadmaps   []*domain.Roadmap  `json:"roadmaps"`
	Settings   domain.AppSettings `json:"settings"`
	LastExport time.Time          `json:"last_export"`
}

// ExportData returns a JSON snapshot of all roadmaps and settings.
// The output is indented so users can inspect their own backups.
func (s *FileStore) ExportData(ctx context.Context) ([]byte, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	roadmaps, err := s.GetAllRoadmaps(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export data: %w", err)
	}
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export data: %w", err)
	}

	snapshot := Snapshot{
		Version:    constants.ExportFormatVersion,
		Roadmaps:   roadmaps,
		Settings:   settings,
		LastExport: s.clk.Now().UTC(),
	}

	data, err := json.MarshalIndent(&snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export data: %w", err)
	}
	return data, nil
}

// ImportData replaces all stored roadmaps and settings with the snapshot's
// contents. The version tag is validated before any destructive step, so a
// mismatched snapshot leaves existing data untouched.
//
// The replacement itself is clear-then-bulk-insert: a failure mid-import
// (e.g. disk full halfway through the roadmap writes) can leave the store
// holding only part of the snapshot. Keep the snapshot file around until
// the import has been verified.
func (s *FileStore) ImportData(ctx context.Context, data []byte) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to parse import data: %w: %w", horizonerrors.ErrCorruptDocument, err)
	}

	if snapshot.Version != constants.ExportFormatVersion {
		return fmt.Errorf("failed to import data: version %d: %w", snapshot.Version, horizonerrors.ErrUnsupportedVersion)
	}

	if err := s.clearRoadmaps(); err != nil {
		return fmt.Errorf("failed to import data: %w", err)
	}

	// Documents are written verbatim (no UpdatedAt restamp) so that an
	// export/import round-trip preserves the data exactly.
	for _, rm := range snapshot.Roadmaps {
		if rm == nil {
			continue
		}
		if err := s.writeRoadmapVerbatim(ctx, rm); err != nil {
			return fmt.Errorf("failed to import roadmap '%s': %w", rm.ID, err)
		}
	}

	if err := s.SaveSettings(ctx, snapshot.Settings); err != nil {
		return fmt.Errorf("failed to import data: %w", err)
	}

	return nil
}

// ClearAllData wipes every roadmap and the settings record. Irreversible.
func (s *FileStore) ClearAllData(ctx context.Context) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if err := s.clearRoadmaps(); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}

	if err := os.Remove(s.settingsFilePath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear settings: %w", err)
	}

	return nil
}

// writeRoadmapVerbatim persists a roadmap document exactly as given,
// without the audit restamping SaveRoadmap performs.
func (s *FileStore) writeRoadmapVerbatim(ctx context.Context, rm *domain.Roadmap) error {
	if err := validateID(rm.ID); err != nil {
		return err
	}
	if err := os.MkdirAll(s.roadmapsDir(), dirPerm); err != nil {
		return fmt.Errorf("failed to create roadmaps directory: %w", err)
	}

	path := s.roadmapFilePath(rm.ID)
	lockFile, err := s.acquireLock(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = s.releaseLock(lockFile) }()

	data, err := json.MarshalIndent(rm, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(path, data)
}

// clearRoadmaps removes the whole roadmaps directory.
func (s *FileStore) clearRoadmaps() error {
	if err := os.RemoveAll(s.roadmapsDir()); err != nil {
		return fmt.Errorf("failed to clear roadmaps: %w", err)
	}
	return nil
}
