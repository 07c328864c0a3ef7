package dates

import (
	"sort"
	"time"

	"github.com/mrz1836/horizon/internal/domain"
	horizonerrors "github.com/mrz1836/horizon/internal/errors"
)

// parseISODate parses a calendar date, accepting the plain date layout and
// full RFC 3339 timestamps (older exports stored the latter).
func parseISODate(value string) (time.Time, bool) {
	if t, err := time.Parse(ISODateLayout, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// IsValidISODate reports whether the string parses as a calendar date.
func IsValidISODate(value string) bool {
	_, ok := parseISODate(value)
	return ok
}

// NewISODate builds a calendar date string from a (year, month, day) triple.
func NewISODate(year, month, day int) string {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(ISODateLayout)
}

// ObjectiveDuration returns the inclusive day count between two calendar
// dates (end - start + 1). Returns ErrInvalidDate when either date is
// unparseable or end precedes start.
func ObjectiveDuration(startDate, endDate string) (int, error) {
	start, ok := parseISODate(startDate)
	if !ok {
		return 0, horizonerrors.Wrapf(horizonerrors.ErrInvalidDate, "start %q", startDate)
	}
	end, ok := parseISODate(endDate)
	if !ok {
		return 0, horizonerrors.Wrapf(horizonerrors.ErrInvalidDate, "end %q", endDate)
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 0, horizonerrors.Wrapf(horizonerrors.ErrInvalidDate, "end %q precedes start %q", endDate, startDate)
	}
	return days, nil
}

// ShouldPinObjective reports whether the objective spans essentially the
// whole of the given month: its start falls in that calendar month, its end
// falls in that calendar month, and the span is at least 28 days.
//
// This is a pure predicate over the objective's own dates and can be
// recomputed at any time. Unparseable dates yield false, never a panic.
func ShouldPinObjective(o domain.Objective, year, month int) bool {
	start, ok := parseISODate(o.StartDate)
	if !ok {
		return false
	}
	end, ok := parseISODate(o.EndDate)
	if !ok {
		return false
	}

	sameMonth := func(t time.Time) bool {
		return t.Year() == year && int(t.Month()) == month
	}
	if !sameMonth(start) || !sameMonth(end) {
		return false
	}
	return int(end.Sub(start).Hours()/24) >= 28
}

// SortObjectivesInMonth returns a new slice sorted for display: pinned
// objectives first, then ascending start date. The sort is stable and
// unparseable dates compare equal.
func SortObjectivesInMonth(objectives []domain.Objective) []domain.Objective {
	sorted := make([]domain.Objective, len(objectives))
	copy(sorted, objectives)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		startA, okA := parseISODate(a.StartDate)
		startB, okB := parseISODate(b.StartDate)
		if !okA || !okB {
			return false
		}
		return startA.Before(startB)
	})
	return sorted
}
