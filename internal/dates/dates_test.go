package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/horizon/internal/clock"
	horizonerrors "github.com/mrz1836/horizon/internal/errors"
)

// march2025 is a fixed "now" used throughout the classification tests.
var march2025 = clock.NewMock(time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)) //nolint:gochecknoglobals // Shared test fixture

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-03", MonthKey(2025, 3))
	assert.Equal(t, "2025-12", MonthKey(2025, 12))
	assert.Equal(t, "0999-01", MonthKey(999, 1))
}

func TestParseMonthKeyRoundTrip(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for month := 1; month <= 12; month++ {
			y, m, err := ParseMonthKey(MonthKey(year, month))
			require.NoError(t, err)
			assert.Equal(t, year, y)
			assert.Equal(t, month, m)
		}
	}
}

func TestParseMonthKeyRejectsMalformed(t *testing.T) {
	tests := []string{"", "2025", "2025-13", "2025-00", "2025-3-1", "abcd-03", "2025-xy", "-5-03"}
	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			_, _, err := ParseMonthKey(key)
			assert.ErrorIs(t, err, horizonerrors.ErrInvalidMonthKey)
		})
	}
}

func TestCurrentMonthKey(t *testing.T) {
	assert.Equal(t, "2025-03", CurrentMonthKey(march2025))
}

func TestGenerateMonthKeys(t *testing.T) {
	t.Run("range completeness", func(t *testing.T) {
		keys := GenerateMonthKeys(2024, 2026)
		require.Len(t, keys, 36)
		assert.Equal(t, "2024-01", keys[0])
		assert.Equal(t, "2024-12", keys[11])
		assert.Equal(t, "2025-01", keys[12])
		assert.Equal(t, "2026-12", keys[35])
	})

	t.Run("single year", func(t *testing.T) {
		assert.Len(t, GenerateMonthKeys(2025, 2025), 12)
	})

	t.Run("inverted range is empty", func(t *testing.T) {
		assert.Empty(t, GenerateMonthKeys(2026, 2025))
	})
}

func TestNextPreviousMonthKey(t *testing.T) {
	next, err := NextMonthKey("2025-12")
	require.NoError(t, err)
	assert.Equal(t, "2026-01", next)

	prev, err := PreviousMonthKey("2025-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-12", prev)

	_, err = NextMonthKey("garbage")
	assert.ErrorIs(t, err, horizonerrors.ErrInvalidMonthKey)
}

func TestMonthClassification(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   int
		past    bool
		current bool
		future  bool
	}{
		{"previous month", 2025, 2, true, false, false},
		{"previous year", 2024, 12, true, false, false},
		{"current month", 2025, 3, false, true, false},
		{"next month", 2025, 4, false, false, true},
		{"next year", 2026, 1, false, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.past, IsMonthPast(march2025, tc.year, tc.month))
			assert.Equal(t, tc.current, IsMonthCurrent(march2025, tc.year, tc.month))
			assert.Equal(t, tc.future, IsMonthFuture(march2025, tc.year, tc.month))

			// Mutually exclusive and exhaustive.
			count := 0
			for _, b := range []bool{
				IsMonthPast(march2025, tc.year, tc.month),
				IsMonthCurrent(march2025, tc.year, tc.month),
				IsMonthFuture(march2025, tc.year, tc.month),
			} {
				if b {
					count++
				}
			}
			assert.Equal(t, 1, count)
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year, month, want int
	}{
		{2025, 1, 31},
		{2025, 2, 28},
		{2024, 2, 29}, // leap year
		{2000, 2, 29}, // divisible by 400
		{1900, 2, 28}, // divisible by 100 but not 400
		{2025, 4, 30},
		{2025, 12, 31},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, DaysInMonth(tc.year, tc.month), "%04d-%02d", tc.year, tc.month)
	}
}

func TestMonthProgress(t *testing.T) {
	assert.Equal(t, 100, MonthProgress(march2025, 2025, 2))
	assert.Equal(t, 0, MonthProgress(march2025, 2025, 4))

	// March 15 of 31 days.
	got := MonthProgress(march2025, 2025, 3)
	assert.Equal(t, 48, got)
}
