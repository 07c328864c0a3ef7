// Package dates provides pure date and month-key utilities for the timeline.
//
// Month keys are "YYYY-MM" strings (zero-padded month) and are the canonical
// addressing scheme for month blocks within a roadmap. Everything here is
// deterministic; functions that depend on "now" take a clock.Clock so tests
// can control time.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mrz1836/horizon/internal/clock"
	horizonerrors "github.com/mrz1836/horizon/internal/errors"
)

// ISODateLayout is the layout for calendar dates used throughout Horizon.
const ISODateLayout = "2006-01-02"

// MonthKey returns the canonical "YYYY-MM" key for a year and month.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// ParseMonthKey parses a "YYYY-MM" key back into year and month.
// It round-trips exactly with MonthKey for any valid key and rejects
// malformed input with ErrInvalidMonthKey.
func ParseMonthKey(key string) (year, month int, err error) {
	parts := strings.Split(key, "-")
	if len(parts) != 2 {
		return 0, 0, horizonerrors.Wrapf(horizonerrors.ErrInvalidMonthKey, "%q", key)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, horizonerrors.Wrapf(horizonerrors.ErrInvalidMonthKey, "%q", key)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, horizonerrors.Wrapf(horizonerrors.ErrInvalidMonthKey, "%q", key)
	}

	if year < 0 || month < 1 || month > 12 {
		return 0, 0, horizonerrors.Wrapf(horizonerrors.ErrInvalidMonthKey, "%q", key)
	}
	return year, month, nil
}

// CurrentMonthKey returns the month key for the clock's current time.
func CurrentMonthKey(clk clock.Clock) string {
	now := clk.Now()
	return MonthKey(now.Year(), int(now.Month()))
}

// GenerateMonthKeys returns every month key from January of startYear
// through December of endYear, ascending. Empty when endYear < startYear.
func GenerateMonthKeys(startYear, endYear int) []string {
	if endYear < startYear {
		return []string{}
	}
	keys := make([]string, 0, 12*(endYear-startYear+1))
	for year := startYear; year <= endYear; year++ {
		for month := 1; month <= 12; month++ {
			keys = append(keys, MonthKey(year, month))
		}
	}
	return keys
}

// NextMonthKey returns the key of the month after the given key.
func NextMonthKey(key string) (string, error) {
	year, month, err := ParseMonthKey(key)
	if err != nil {
		return "", err
	}
	next := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return MonthKey(next.Year(), int(next.Month())), nil
}

// PreviousMonthKey returns the key of the month before the given key.
func PreviousMonthKey(key string) (string, error) {
	year, month, err := ParseMonthKey(key)
	if err != nil {
		return "", err
	}
	prev := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return MonthKey(prev.Year(), int(prev.Month())), nil
}

// IsMonthPast reports whether the month lies strictly before the clock's
// current month.
func IsMonthPast(clk clock.Clock, year, month int) bool {
	now := clk.Now()
	if year != now.Year() {
		return year < now.Year()
	}
	return month < int(now.Month())
}

// IsMonthCurrent reports whether the month is the clock's current month.
func IsMonthCurrent(clk clock.Clock, year, month int) bool {
	now := clk.Now()
	return year == now.Year() && month == int(now.Month())
}

// IsMonthFuture reports whether the month lies strictly after the clock's
// current month. For any valid (year, month), exactly one of IsMonthPast,
// IsMonthCurrent, and IsMonthFuture holds.
func IsMonthFuture(clk clock.Clock, year, month int) bool {
	return !IsMonthPast(clk, year, month) && !IsMonthCurrent(clk, year, month)
}

// DaysInMonth returns the number of days in the given month (28-31),
// following Gregorian rules including leap years.
func DaysInMonth(year, month int) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthProgress returns the percentage of the month that has elapsed:
// 100 for past months, 0 for future months, and a rounded day-based
// percentage for the current month.
func MonthProgress(clk clock.Clock, year, month int) int {
	if IsMonthPast(clk, year, month) {
		return 100
	}
	if !IsMonthCurrent(clk, year, month) {
		return 0
	}
	total := DaysInMonth(year, month)
	elapsed := clk.Now().Day()
	return int(float64(elapsed)/float64(total)*100 + 0.5)
}
