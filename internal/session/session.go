// Package session holds the in-memory state for the currently open roadmap.
//
// A Session is explicitly constructed and passed to collaborators; there is
// no package-level singleton. All mutators work on deep copies of the stored
// aggregate and restamp UpdatedAt on every touched level up to the root, so
// a returned roadmap can never be used to mutate session state in place.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mrz1836/horizon/internal/clock"
	"github.com/mrz1836/horizon/internal/dates"
	"github.com/mrz1836/horizon/internal/domain"
	"github.com/mrz1836/horizon/internal/errors"
)

// Session is the process-wide "currently open roadmap" state.
// All access is guarded by an internal mutex; methods are safe for
// concurrent use.
type Session struct {
	mu sync.RWMutex

	clk clock.Clock

	current          *domain.Roadmap
	selectedMonthKey string
	loading          bool
	lastErr          string

	// dirty is set by every roadmap mutation and cleared after a flush;
	// the autosaver uses it to skip redundant writes.
	dirty bool
}

// New creates an empty session. A nil clock defaults to the real clock.
func New(clk clock.Clock) *Session {
	if clk == nil {
		clk = clock.RealClock{}
	}

	return &Session{clk: clk}
}

// CurrentRoadmap returns a deep copy of the open roadmap, or nil when no
// roadmap is open.
func (s *Session) CurrentRoadmap() *domain.Roadmap {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}

	rm := s.current.Clone()

	return &rm
}

// RoadmapID returns the open roadmap's ID, or "" when none is open.
func (s *Session) RoadmapID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}

	return s.current.ID
}

// Month returns a deep copy of the month block for the given key.
func (s *Session) Month(key string) (domain.MonthBlock, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return domain.MonthBlock{}, false
	}

	month, ok := s.current.Months[key]
	if !ok {
		return domain.MonthBlock{}, false
	}

	return month.Clone(), true
}

// SetCurrentRoadmap replaces the open roadmap with a deep copy of rm and
// clears any previous error. Passing nil closes the roadmap.
func (s *Session) SetCurrentRoadmap(rm *domain.Roadmap) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rm == nil {
		s.current = nil
	} else {
		clone := rm.Clone()
		s.current = &clone
	}
	s.lastErr = ""
	s.dirty = false
}

// SelectedMonth returns the currently highlighted month key.
func (s *Session) SelectedMonth() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selectedMonthKey
}

// SetSelectedMonth records the highlighted month key. Display state only;
// it does not touch the roadmap or the dirty flag.
func (s *Session) SetSelectedMonth(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedMonthKey = key
}

// Loading reports whether a load is in progress.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loading
}

// SetLoading records whether a load is in progress.
func (s *Session) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = loading
}

// Err returns the last recorded error message, or "".
func (s *Session) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastErr
}

// SetError records an error message for display.
func (s *Session) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastErr = msg
}

// Dirty reports whether the roadmap has unsaved mutations.
func (s *Session) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dirty
}

// ClearDirty marks the roadmap as saved. Called after a successful flush.
func (s *Session) ClearDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dirty = false
}

// AddMonth inserts or replaces the month block stored under key.
// No-op when no roadmap is open.
func (s *Session) AddMonth(key string, month domain.MonthBlock) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}

	now := s.clk.Now().UTC()

	clone := month.Clone()
	clone.UpdatedAt = now
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}

	if s.current.Months == nil {
		s.current.Months = make(map[string]domain.MonthBlock)
	}
	s.current.Months[key] = clone
	s.current.UpdatedAt = now
	s.dirty = true
}

// UpdateMonth merges the patch into the month stored under key.
// No-op when no roadmap is open or the key is absent; it never creates
// a month.
func (s *Session) UpdateMonth(key string, patch domain.MonthPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}

	month, ok := s.current.Months[key]
	if !ok {
		return
	}

	now := s.clk.Now().UTC()

	updated := patch.Apply(month)
	updated.UpdatedAt = now
	s.current.Months[key] = updated
	s.current.UpdatedAt = now
	s.dirty = true
}

// AddObjective appends the objective to the month stored under monthKey.
// The month must already exist; callers materialize it first. No-op when
// no roadmap is open or the month is absent.
func (s *Session) AddObjective(monthKey string, obj domain.Objective) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}

	month, ok := s.current.Months[monthKey]
	if !ok {
		return
	}

	now := s.clk.Now().UTC()

	month.Objectives = append(month.Objectives, obj.Clone())
	month.UpdatedAt = now
	s.current.Months[monthKey] = month
	s.current.UpdatedAt = now
	s.dirty = true
}

// UpdateObjective merges the patch into the identified objective.
// Silent no-op when the roadmap, month, or objective is missing.
func (s *Session) UpdateObjective(monthKey, objectiveID string, patch domain.ObjectivePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}

	month, ok := s.current.Months[monthKey]
	if !ok {
		return
	}

	idx := indexOfObjective(month.Objectives, objectiveID)
	if idx < 0 {
		return
	}

	now := s.clk.Now().UTC()

	updated := patch.Apply(month.Objectives[idx])
	updated.UpdatedAt = now
	month.Objectives[idx] = updated
	month.UpdatedAt = now
	s.current.Months[monthKey] = month
	s.current.UpdatedAt = now
	s.dirty = true
}

// DeleteObjective removes the identified objective from its month.
// Idempotent; deleting a missing objective is a no-op.
func (s *Session) DeleteObjective(monthKey, objectiveID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}

	month, ok := s.current.Months[monthKey]
	if !ok {
		return
	}

	idx := indexOfObjective(month.Objectives, objectiveID)
	if idx < 0 {
		return
	}

	now := s.clk.Now().UTC()

	month.Objectives = append(month.Objectives[:idx], month.Objectives[idx+1:]...)
	month.UpdatedAt = now
	s.current.Months[monthKey] = month
	s.current.UpdatedAt = now
	s.dirty = true
}

// MoveObjective relocates an objective between months as a single atomic
// operation: either the objective ends up in the target month and is gone
// from the source, or the roadmap is unchanged. The target month block is
// materialized when absent, and IsPinned is recomputed against the target
// month's calendar.
func (s *Session) MoveObjective(objectiveID, fromKey, toKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return errors.ErrNoRoadmapOpen
	}

	if fromKey == toKey {
		return nil
	}

	toYear, toMonth, err := dates.ParseMonthKey(toKey)
	if err != nil {
		return err
	}

	source, ok := s.current.Months[fromKey]
	if !ok {
		return errors.Wrapf(errors.ErrMonthNotFound, "month %q", fromKey)
	}

	idx := indexOfObjective(source.Objectives, objectiveID)
	if idx < 0 {
		return errors.Wrapf(errors.ErrObjectiveNotFound, "objective %q in month %q", objectiveID, fromKey)
	}

	now := s.clk.Now().UTC()

	moved := source.Objectives[idx].Clone()
	moved.IsPinned = dates.ShouldPinObjective(moved, toYear, toMonth)
	moved.UpdatedAt = now

	target, ok := s.current.Months[toKey]
	if !ok {
		target = domain.MonthBlock{
			ID:        uuid.NewString(),
			Year:      toYear,
			Month:     toMonth,
			CreatedAt: now,
		}
	}
	target.Objectives = append(target.Objectives, moved)
	target.UpdatedAt = now

	source.Objectives = append(source.Objectives[:idx], source.Objectives[idx+1:]...)
	source.UpdatedAt = now

	if s.current.Months == nil {
		s.current.Months = make(map[string]domain.MonthBlock)
	}
	s.current.Months[fromKey] = source
	s.current.Months[toKey] = target
	s.current.UpdatedAt = now
	s.dirty = true

	return nil
}

// Reset returns the session to its initial empty state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.selectedMonthKey = ""
	s.loading = false
	s.lastErr = ""
	s.dirty = false
}

func indexOfObjective(objectives []domain.Objective, id string) int {
	for i := range objectives {
		if objectives[i].ID == id {
			return i
		}
	}

	return -1
}
