package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculate_ConsecutiveRunEndingToday(t *testing.T) {
	checkIns := []time.Time{
		day(2024, 1, 1),
		day(2024, 1, 2),
		day(2024, 1, 3),
	}

	res := Calculate(checkIns, day(2024, 1, 3))

	assert.Equal(t, 3, res.CurrentStreak)
	assert.Equal(t, 3, res.LongestStreak)
}

func TestCalculate_BrokenRun(t *testing.T) {
	checkIns := []time.Time{
		day(2024, 1, 1),
		day(2024, 1, 2),
		day(2024, 1, 5),
	}

	res := Calculate(checkIns, day(2024, 1, 5))

	assert.Equal(t, 1, res.CurrentStreak)
	assert.Equal(t, 2, res.LongestStreak)
}

func TestCalculate_NoCheckInToday(t *testing.T) {
	checkIns := []time.Time{
		day(2024, 1, 1),
		day(2024, 1, 2),
		day(2024, 1, 3),
	}

	// The run ended yesterday, so the current streak is 0 while the
	// longest streak remembers it.
	res := Calculate(checkIns, day(2024, 1, 4))

	assert.Equal(t, 0, res.CurrentStreak)
	assert.Equal(t, 3, res.LongestStreak)
}

func TestCalculate_Empty(t *testing.T) {
	res := Calculate(nil, day(2024, 1, 1))

	assert.Equal(t, 0, res.CurrentStreak)
	assert.Equal(t, 0, res.LongestStreak)
}

func TestCalculate_DuplicateDaysCollapse(t *testing.T) {
	checkIns := []time.Time{
		day(2024, 1, 1),
		time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC),
		day(2024, 1, 2),
		day(2024, 1, 2),
	}

	res := Calculate(checkIns, day(2024, 1, 2))

	assert.Equal(t, 2, res.CurrentStreak)
	assert.Equal(t, 2, res.LongestStreak)
}

func TestCalculate_UnorderedInput(t *testing.T) {
	checkIns := []time.Time{
		day(2024, 1, 3),
		day(2024, 1, 1),
		day(2024, 1, 2),
	}

	res := Calculate(checkIns, day(2024, 1, 3))

	assert.Equal(t, 3, res.CurrentStreak)
	assert.Equal(t, 3, res.LongestStreak)
}

func TestCalculate_LongestNeverBelowCurrent(t *testing.T) {
	checkIns := []time.Time{
		day(2024, 1, 1),
		day(2024, 1, 3),
		day(2024, 1, 4),
		day(2024, 1, 5),
	}

	res := Calculate(checkIns, day(2024, 1, 5))

	assert.Equal(t, 3, res.CurrentStreak)
	assert.GreaterOrEqual(t, res.LongestStreak, res.CurrentStreak)
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name  string
		total int
		first time.Time
		today time.Time
		want  float64
	}{
		{"perfect", 3, day(2024, 1, 1), day(2024, 1, 3), 1.0},
		{"two thirds", 2, day(2024, 1, 1), day(2024, 1, 3), 0.67},
		{"single day", 1, day(2024, 1, 1), day(2024, 1, 1), 1.0},
		{"sparse", 3, day(2024, 1, 1), day(2024, 1, 10), 0.3},
		{"zero check-ins", 0, day(2024, 1, 1), day(2024, 1, 10), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CompletionRate(tt.total, tt.first, tt.today), 1e-9)
		})
	}
}

func TestCompletionRate_ClampedAtOne(t *testing.T) {
	// More check-ins than elapsed days (duplicates in raw data) must not
	// push the rate above 1.0.
	got := CompletionRate(5, day(2024, 1, 1), day(2024, 1, 3))

	assert.Equal(t, 1.0, got)
}

func TestBuildStats(t *testing.T) {
	checkIns := []time.Time{
		day(2024, 1, 5),
		day(2024, 1, 1),
		day(2024, 1, 2),
	}

	stats := BuildStats(checkIns, day(2024, 1, 5))

	assert.Equal(t, 3, stats.TotalCheckIns)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 2, stats.LongestStreak)
	assert.InDelta(t, 0.6, stats.CompletionRate, 1e-9)
	assert.Equal(t, day(2024, 1, 1), *stats.FirstCheckIn)
	assert.Equal(t, day(2024, 1, 5), *stats.LastCheckIn)
}

func TestBuildStats_Empty(t *testing.T) {
	stats := BuildStats(nil, day(2024, 1, 5))

	assert.Equal(t, 0, stats.TotalCheckIns)
	assert.Equal(t, 0.0, stats.CompletionRate)
	assert.Nil(t, stats.FirstCheckIn)
	assert.Nil(t, stats.LastCheckIn)
}
