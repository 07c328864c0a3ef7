// Package planner implements the objective lifecycle rules on top of the
// session and the store: creation defaults, completion side effects,
// progress clamping, month moves, and the write-behind flush.
package planner

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/horizon/internal/clock"
	"github.com/mrz1836/horizon/internal/constants"
	"github.com/mrz1836/horizon/internal/dates"
	"github.com/mrz1836/horizon/internal/domain"
	"github.com/mrz1836/horizon/internal/errors"
	"github.com/mrz1836/horizon/internal/session"
	"github.com/mrz1836/horizon/internal/store"
)

// Service coordinates the in-memory session with the persistent store.
// Mutations apply to the session synchronously; durability happens on
// Flush, either explicit or via the Autosaver.
type Service struct {
	sess   *session.Session
	store  store.Store
	clk    clock.Clock
	logger zerolog.Logger
}

// New creates a planner service. A nil clock defaults to the real clock.
func New(sess *session.Session, st store.Store, clk clock.Clock, logger zerolog.Logger) *Service {
	if clk == nil {
		clk = clock.RealClock{}
	}

	return &Service{
		sess:   sess,
		store:  st,
		clk:    clk,
		logger: logger,
	}
}

// Session exposes the underlying session for read-side collaborators.
func (s *Service) Session() *session.Session {
	return s.sess
}

// RoadmapInput carries the user-supplied fields for a new roadmap.
type RoadmapInput struct {
	Title       string
	Description string
	StartYear   int
	EndYear     int
	ColorTheme  string
	Icon        string
	Category    string
}

// CreateRoadmap validates the input, persists a new roadmap, and returns
// it. Validation failures happen before any mutation or write.
func (s *Service) CreateRoadmap(ctx context.Context, input RoadmapInput) (*domain.Roadmap, error) {
	now := s.clk.Now().UTC()

	rm := &domain.Roadmap{
		ID:             uuid.NewString(),
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		StartYear:      input.StartYear,
		EndYear:        input.EndYear,
		Months:         make(map[string]domain.MonthBlock),
		ColorTheme:     input.ColorTheme,
		Icon:           input.Icon,
		Category:       input.Category,
		CreatedAt:      now,
		UpdatedAt:      now,
		LastAccessedAt: now,
		SchemaVersion:  constants.RoadmapSchemaVersion,
	}

	if err := rm.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.store.SaveRoadmap(ctx, rm); err != nil {
		return nil, errors.Wrap(err, "failed to create roadmap")
	}

	s.logger.Info().
		Str("roadmap_id", rm.ID).
		Str("title", rm.Title).
		Int("start_year", rm.StartYear).
		Int("end_year", rm.EndYear).
		Msg("roadmap created")

	return rm, nil
}

// OpenRoadmap loads the roadmap into the session and bumps its
// last-accessed timestamp.
func (s *Service) OpenRoadmap(ctx context.Context, id string) (*domain.Roadmap, error) {
	s.sess.SetLoading(true)
	defer s.sess.SetLoading(false)

	rm, err := s.store.GetRoadmap(ctx, id)
	if err != nil {
		s.sess.SetError(errors.UserMessage(err))

		return nil, err
	}

	if err := s.store.TouchRoadmap(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("roadmap_id", id).Msg("failed to bump last-accessed timestamp")
	}

	s.sess.SetCurrentRoadmap(rm)

	return rm, nil
}

// ObjectiveInput carries the user-supplied fields for a new objective.
type ObjectiveInput struct {
	Title       string
	Description string
	StartDate   string
	EndDate     string
	EnergyLevel domain.EnergyLevel
	Priority    domain.Priority
	Tags        []string
	Category    string
	Notes       string
}

// CreateObjective builds a new objective with generated ID, computed
// duration and pin, and lifecycle defaults (pending, zero progress), then
// adds it to the given month, materializing the month block when absent.
func (s *Service) CreateObjective(monthKey string, input ObjectiveInput) (domain.Objective, error) {
	if s.sess.RoadmapID() == "" {
		return domain.Objective{}, errors.ErrNoRoadmapOpen
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Objective{}, errors.Wrap(errors.ErrEmptyValue, "objective title is required")
	}

	year, month, err := dates.ParseMonthKey(monthKey)
	if err != nil {
		return domain.Objective{}, err
	}

	duration, err := dates.ObjectiveDuration(input.StartDate, input.EndDate)
	if err != nil {
		return domain.Objective{}, err
	}

	energy := input.EnergyLevel
	if energy == "" {
		energy = domain.EnergyMedium
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !energy.IsValid() {
		return domain.Objective{}, errors.Wrapf(errors.ErrInvalidArgument, "energy level %q", energy)
	}
	if !priority.IsValid() {
		return domain.Objective{}, errors.Wrapf(errors.ErrInvalidArgument, "priority %q", priority)
	}

	now := s.clk.Now().UTC()

	obj := domain.Objective{
		ID:          uuid.NewString(),
		Title:       title,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Duration:    duration,
		EnergyLevel: energy,
		Priority:    priority,
		Status:      domain.StatusPending,
		Tags:        input.Tags,
		Category:    input.Category,
		Notes:       input.Notes,
		Progress:    0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	obj.IsPinned = dates.ShouldPinObjective(obj, year, month)

	if _, ok := s.sess.Month(monthKey); !ok {
		s.sess.AddMonth(monthKey, domain.MonthBlock{
			ID:    uuid.NewString(),
			Year:  year,
			Month: month,
		})
	}
	s.sess.AddObjective(monthKey, obj)

	return obj, nil
}

// UpdateObjective applies a partial update. When the patch changes the
// date range, duration and pin are recomputed against the merged dates.
func (s *Service) UpdateObjective(monthKey, objectiveID string, patch domain.ObjectivePatch) error {
	if s.sess.RoadmapID() == "" {
		return errors.ErrNoRoadmapOpen
	}

	if patch.TouchesDates() {
		existing, err := s.findObjective(monthKey, objectiveID)
		if err != nil {
			return err
		}

		startDate := existing.StartDate
		if patch.StartDate != nil {
			startDate = *patch.StartDate
		}
		endDate := existing.EndDate
		if patch.EndDate != nil {
			endDate = *patch.EndDate
		}

		duration, err := dates.ObjectiveDuration(startDate, endDate)
		if err != nil {
			return err
		}

		year, month, err := dates.ParseMonthKey(monthKey)
		if err != nil {
			return err
		}

		probe := existing.Clone()
		probe.StartDate = startDate
		probe.EndDate = endDate
		pinned := dates.ShouldPinObjective(probe, year, month)

		patch.Duration = &duration
		patch.IsPinned = &pinned
	}

	s.sess.UpdateObjective(monthKey, objectiveID, patch)

	return nil
}

// DeleteObjective removes an objective. Idempotent.
func (s *Service) DeleteObjective(monthKey, objectiveID string) error {
	if s.sess.RoadmapID() == "" {
		return errors.ErrNoRoadmapOpen
	}

	s.sess.DeleteObjective(monthKey, objectiveID)

	return nil
}

// CompleteObjective marks an objective done: completed status, full
// progress, and a completion timestamp, all in one update.
func (s *Service) CompleteObjective(monthKey, objectiveID string) error {
	if _, err := s.findObjective(monthKey, objectiveID); err != nil {
		return err
	}

	now := s.clk.Now().UTC()
	status := domain.StatusCompleted
	progress := 100

	s.sess.UpdateObjective(monthKey, objectiveID, domain.ObjectivePatch{
		Status:      &status,
		Progress:    &progress,
		CompletedAt: &now,
	})

	return nil
}

// UpdateProgress sets an objective's progress, clamped to [0, 100].
// Reaching 100 also completes the objective in the same update.
func (s *Service) UpdateProgress(monthKey, objectiveID string, progress int) error {
	if _, err := s.findObjective(monthKey, objectiveID); err != nil {
		return err
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	patch := domain.ObjectivePatch{Progress: &progress}
	if progress == 100 {
		now := s.clk.Now().UTC()
		status := domain.StatusCompleted
		patch.Status = &status
		patch.CompletedAt = &now
	}

	s.sess.UpdateObjective(monthKey, objectiveID, patch)

	return nil
}

// UpdateStatus sets an objective's status. Completing via status also
// snaps progress to 100 and stamps CompletedAt; moving away from
// completed leaves progress and CompletedAt as they are.
func (s *Service) UpdateStatus(monthKey, objectiveID string, status domain.ObjectiveStatus) error {
	if !status.IsValid() {
		return errors.Wrapf(errors.ErrInvalidArgument, "status %q", status)
	}

	if _, err := s.findObjective(monthKey, objectiveID); err != nil {
		return err
	}

	patch := domain.ObjectivePatch{Status: &status}
	if status == domain.StatusCompleted {
		now := s.clk.Now().UTC()
		progress := 100
		patch.Progress = &progress
		patch.CompletedAt = &now
	}

	s.sess.UpdateObjective(monthKey, objectiveID, patch)

	return nil
}

// MoveObjective relocates an objective between months atomically.
func (s *Service) MoveObjective(objectiveID, fromKey, toKey string) error {
	return s.sess.MoveObjective(objectiveID, fromKey, toKey)
}

// Flush writes the open roadmap to the store. Mutations are in-memory
// until flushed; a mutation that is never flushed is lost on exit.
func (s *Service) Flush(ctx context.Context) error {
	rm := s.sess.CurrentRoadmap()
	if rm == nil {
		return errors.ErrNoRoadmapOpen
	}

	if _, err := s.store.SaveRoadmap(ctx, rm); err != nil {
		return errors.Wrap(err, "failed to flush roadmap")
	}

	s.sess.ClearDirty()
	s.logger.Debug().Str("roadmap_id", rm.ID).Msg("roadmap flushed")

	return nil
}

func (s *Service) findObjective(monthKey, objectiveID string) (domain.Objective, error) {
	if s.sess.RoadmapID() == "" {
		return domain.Objective{}, errors.ErrNoRoadmapOpen
	}

	month, ok := s.sess.Month(monthKey)
	if !ok {
		return domain.Objective{}, errors.Wrapf(errors.ErrMonthNotFound, "month %q", monthKey)
	}

	for _, obj := range month.Objectives {
		if obj.ID == objectiveID {
			return obj, nil
		}
	}

	return domain.Objective{}, errors.Wrapf(errors.ErrObjectiveNotFound, "objective %q in month %q", objectiveID, monthKey)
}
