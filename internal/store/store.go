// Package store provides durable persistence for Horizon roadmaps and the
// application settings singleton. Each roadmap is stored as one JSON document
// under <home>/roadmaps/; every save rewrites the whole aggregate. Writes are
// atomic (write-then-rename) and guarded by exclusive file locks so that two
// horizon processes cannot interleave partial writes.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/horizon/internal/clock"
	"github.com/mrz1836/horizon/internal/constants"
	"github.com/mrz1836/horizon/internal/ctxutil"
	"github.com/mrz1836/horizon/internal/domain"
	horizonerrors "github.com/mrz1836/horizon/internal/errors"
	"github.com/mrz1836/horizon/internal/flock"
)

// Directory and file permission constants.
const (
	dirPerm  = 0o750 // Secure directory permissions
	filePerm = 0o600 // Secure file permissions
)

// maxConcurrentReads caps parallel roadmap file reads in GetAllRoadmaps.
const maxConcurrentReads = 8

// validRoadmapIDRegex matches IDs safe to embed in a filename.
// UUIDs satisfy this; anything else (path separators, dots) is rejected.
var validRoadmapIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// Store defines the interface for roadmap and settings persistence.
type Store interface {
	// GetAllRoadmaps returns every roadmap, sorted by last access
	// (most recently opened first).
	GetAllRoadmaps(ctx context.Context) ([]*domain.Roadmap, error)

	// GetRoadmap retrieves a roadmap by ID.
	// Returns ErrRoadmapNotFound if it doesn't exist.
	GetRoadmap(ctx context.Context, id string) (*domain.Roadmap, error)

	// SaveRoadmap upserts the roadmap (full-document overwrite) and
	// returns its ID. The store restamps UpdatedAt as part of the call.
	SaveRoadmap(ctx context.Context, roadmap *domain.Roadmap) (string, error)

	// DeleteRoadmap removes a roadmap. Deleting an unknown ID is not an error.
	DeleteRoadmap(ctx context.Context, id string) error

	// TouchRoadmap updates only LastAccessedAt, leaving every other field
	// (including UpdatedAt) untouched.
	TouchRoadmap(ctx context.Context, id string) error

	// GetSettings returns stored settings, or defaults if none exist yet.
	GetSettings(ctx context.Context) (domain.AppSettings, error)

	// SaveSettings upserts the settings singleton.
	SaveSettings(ctx context.Context, settings domain.AppSettings) error

	// ExportData returns a complete, self-describing JSON snapshot of all
	// roadmaps and settings.
	ExportData(ctx context.Context) ([]byte, error)

	// ImportData replaces all roadmaps and settings with the snapshot's
	// contents. Fails with ErrUnsupportedVersion before touching anything
	// when the version tag doesn't match.
	ImportData(ctx context.Context, data []byte) error

	// ClearAllData wipes every roadmap and the settings record. Irreversible.
	ClearAllData(ctx context.Context) error
}

// FileStore implements Store using the local filesystem.
type FileStore struct {
	horizonHome string // Usually ~/.horizon
	clk         clock.Clock
	logger      zerolog.Logger
}

// NewFileStore creates a FileStore rooted at the given horizon home directory.
// If horizonHome is empty, the default ~/.horizon directory is used.
func NewFileStore(horizonHome string, clk clock.Clock, logger zerolog.Logger) (*FileStore, error) {
	if horizonHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		horizonHome = filepath.Join(home, constants.HorizonHome)
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &FileStore{
		horizonHome: horizonHome,
		clk:         clk,
		logger:      logger.With().Str("component", "store").Logger(),
	}, nil
}

// Home returns the store's root directory.
func (s *FileStore) Home() string {
	return s.horizonHome
}

// GetAllRoadmaps returns all roadmaps sorted by LastAccessedAt descending.
// Corrupt or unreadable documents are skipped with a warning rather than
// failing the whole listing.
func (s *FileStore) GetAllRoadmaps(ctx context.Context) ([]*domain.Roadmap, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	dir := s.roadmapsDir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []*domain.Roadmap{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list roadmaps: %w", err)
	}

	var (
		mu       sync.Mutex
		roadmaps = make([]*domain.Roadmap, 0, len(entries))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != constants.RoadmapFileExt {
			continue
		}
		id := entry.Name()[:len(entry.Name())-len(constants.RoadmapFileExt)]
		if !validRoadmapIDRegex.MatchString(id) {
			continue
		}

		g.Go(func() error {
			rm, err := s.GetRoadmap(gctx, id)
			if err != nil {
				// Skip unreadable documents; the rest of the set still loads.
				s.logger.Warn().Str("roadmap_id", id).Err(err).Msg("skipping unreadable roadmap")
				return nil //nolint:nilerr // Intentional skip
			}
			mu.Lock()
			roadmaps = append(roadmaps, rm)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(roadmaps, func(i, j int) bool {
		return roadmaps[i].LastAccessedAt.After(roadmaps[j].LastAccessedAt)
	})

	return roadmaps, nil
}

// GetRoadmap retrieves a roadmap by ID.
func (s *FileStore) GetRoadmap(ctx context.Context, id string) (*domain.Roadmap, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id); err != nil {
		return nil, fmt.Errorf("failed to get roadmap: %w", err)
	}

	path := s.roadmapFilePath(id)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to get roadmap '%s': %w", id, horizonerrors.ErrRoadmapNotFound)
	}

	lockFile, err := s.acquireLock(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to get roadmap '%s': %w", id, err)
	}
	defer func() { _ = s.releaseLock(lockFile) }()

	data, err := os.ReadFile(path) //#nosec G304 -- path is validated and constructed from trusted base
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to get roadmap '%s': %w", id, horizonerrors.ErrRoadmapNotFound)
		}
		return nil, fmt.Errorf("failed to read roadmap '%s': %w", id, err)
	}

	var roadmap domain.Roadmap
	if err := json.Unmarshal(data, &roadmap); err != nil {
		return nil, fmt.Errorf("failed to parse roadmap '%s': %w: %w", id, horizonerrors.ErrCorruptDocument, err)
	}

	return &roadmap, nil
}

// SaveRoadmap upserts the roadmap with full-document overwrite semantics.
// UpdatedAt is restamped here so the persisted record always reflects the
// durable write time; this stamp wins over any caller-side stamping.
func (s *FileStore) SaveRoadmap(ctx context.Context, roadmap *domain.Roadmap) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}
	if roadmap == nil {
		return "", fmt.Errorf("failed to save roadmap: roadmap %w", horizonerrors.ErrEmptyValue)
	}
	if err := validateID(roadmap.ID); err != nil {
		return "", fmt.Errorf("failed to save roadmap: %w", err)
	}

	if err := os.MkdirAll(s.roadmapsDir(), dirPerm); err != nil {
		return "", fmt.Errorf("failed to create roadmaps directory: %w", err)
	}

	path := s.roadmapFilePath(roadmap.ID)
	lockFile, err := s.acquireLock(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to save roadmap '%s': %w", roadmap.ID, err)
	}
	defer func() { _ = s.releaseLock(lockFile) }()

	roadmap.UpdatedAt = s.clk.Now().UTC()
	roadmap.SchemaVersion = constants.RoadmapSchemaVersion

	data, err := json.MarshalIndent(roadmap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to save roadmap '%s': %w", roadmap.ID, err)
	}

	if err := atomicWrite(path, data); err != nil {
		return "", fmt.Errorf("failed to save roadmap '%s': %w", roadmap.ID, err)
	}

	return roadmap.ID, nil
}

// DeleteRoadmap removes a roadmap document. Idempotent: deleting a
// non-existent ID succeeds. Deletion cascades to all contained months and
// objectives since the aggregate is a single document.
func (s *FileStore) DeleteRoadmap(ctx context.Context, id string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return fmt.Errorf("failed to delete roadmap: %w", err)
	}

	path := s.roadmapFilePath(id)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete roadmap '%s': %w", id, err)
	}
	// Best-effort removal of a stale lock file.
	_ = os.Remove(path + ".lock")

	return nil
}

// TouchRoadmap rewrites only LastAccessedAt. Every other field, including
// UpdatedAt and the raw document ordering, is preserved byte-for-byte at
// the struct level.
func (s *FileStore) TouchRoadmap(ctx context.Context, id string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return fmt.Errorf("failed to touch roadmap: %w", err)
	}

	path := s.roadmapFilePath(id)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("failed to touch roadmap '%s': %w", id, horizonerrors.ErrRoadmapNotFound)
	}

	lockFile, err := s.acquireLock(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to touch roadmap '%s': %w", id, err)
	}
	defer func() { _ = s.releaseLock(lockFile) }()

	data, err := os.ReadFile(path) //#nosec G304 -- path is validated and constructed from trusted base
	if err != nil {
		return fmt.Errorf("failed to touch roadmap '%s': %w", id, err)
	}

	var roadmap domain.Roadmap
	if err := json.Unmarshal(data, &roadmap); err != nil {
		return fmt.Errorf("failed to touch roadmap '%s': %w: %w", id, horizonerrors.ErrCorruptDocument, err)
	}

	roadmap.LastAccessedAt = s.clk.Now().UTC()

	out, err := json.MarshalIndent(&roadmap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to touch roadmap '%s': %w", id, err)
	}
	if err := atomicWrite(path, out); err != nil {
		return fmt.Errorf("failed to touch roadmap '%s': %w", id, err)
	}

	return nil
}

// GetSettings returns the stored settings, or defaults when no record
// exists yet. Absence is never an error.
func (s *FileStore) GetSettings(ctx context.Context) (domain.AppSettings, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return domain.AppSettings{}, err
	}

	path := s.settingsFilePath()
	data, err := os.ReadFile(path) //#nosec G304 -- path is constructed internally
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DefaultSettings(), nil
		}
		return domain.AppSettings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings domain.AppSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return domain.AppSettings{}, fmt.Errorf("failed to parse settings: %w: %w", horizonerrors.ErrCorruptDocument, err)
	}

	return settings, nil
}

// SaveSettings upserts the settings singleton.
func (s *FileStore) SaveSettings(ctx context.Context, settings domain.AppSettings) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if err := os.MkdirAll(s.horizonHome, dirPerm); err != nil {
		return fmt.Errorf("failed to create horizon directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if err := atomicWrite(s.settingsFilePath(), data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

// Helper methods for path construction

// roadmapsDir returns the path to the roadmaps directory.
func (s *FileStore) roadmapsDir() string {
	return filepath.Join(s.horizonHome, constants.RoadmapsDir)
}

// roadmapFilePath returns the path to a roadmap's JSON document.
func (s *FileStore) roadmapFilePath(id string) string {
	return filepath.Join(s.roadmapsDir(), id+constants.RoadmapFileExt)
}

// settingsFilePath returns the path to the settings singleton.
func (s *FileStore) settingsFilePath() string {
	return filepath.Join(s.horizonHome, constants.SettingsFileName)
}

// validateID rejects IDs that are empty or unsafe to embed in a filename.
func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("roadmap ID %w", horizonerrors.ErrEmptyValue)
	}
	if !validRoadmapIDRegex.MatchString(id) {
		return fmt.Errorf("roadmap ID %q: %w", id, horizonerrors.ErrInvalidArgument)
	}
	return nil
}

// acquireLock acquires an exclusive file lock guarding the given document.
// It respects context cancellation during the lock acquisition retry loop.
func (s *FileStore) acquireLock(ctx context.Context, path string) (*os.File, error) {
	lockPath := path + ".lock"

	if err := os.MkdirAll(filepath.Dir(lockPath), dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, filePerm) //#nosec G302,G304 -- lock file needs write access, path is constructed from validated name
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	deadline := time.Now().Add(constants.LockTimeout)
	for {
		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, ctx.Err()
		default:
		}

		if err := flock.Exclusive(f.Fd()); err == nil {
			return f, nil
		}

		if time.Now().After(deadline) {
			_ = f.Close()
			return nil, fmt.Errorf("failed to acquire lock: %w", horizonerrors.ErrLockTimeout)
		}

		time.Sleep(50 * time.Millisecond)
	}
}

// releaseLock releases a file lock.
func (s *FileStore) releaseLock(f *os.File) error {
	if f == nil {
		return nil
	}
	if err := flock.Unlock(f.Fd()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return f.Close()
}

// atomicWrite writes data to a file atomically using write-then-rename.
// Uses filePerm (0o600) for secure file permissions.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}

	// Sync before rename so a crash never leaves a half-written document.
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}
