// Package streak computes streak and completion statistics from a habit's
// check-in dates. Functions here are pure: they take the check-in dates and a
// reference "today" and never touch storage.
package streak

import (
	"math"
	"sort"
	"time"

	"habitflow/internal/pkg/dates"
)

// Result holds the derived streak values for one habit.
type Result struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

// Stats is the full derived statistics block for one habit.
type Stats struct {
	TotalCheckIns  int        `json:"totalCheckIns"`
	CurrentStreak  int        `json:"currentStreak"`
	LongestStreak  int        `json:"longestStreak"`
	CompletionRate float64    `json:"completionRate"`
	FirstCheckIn   *time.Time `json:"firstCheckIn"`
	LastCheckIn    *time.Time `json:"lastCheckIn"`
}

// Calculate derives the current and longest streak from an unordered set of
// check-in dates.
//
// The current streak is anchored on today: without a check-in today it is 0,
// no partial credit for a run that ended yesterday. The longest streak is a
// single forward pass over the distinct sorted dates; duplicate calendar days
// collapse and neither reset nor extend a run.
func Calculate(checkIns []time.Time, today time.Time) Result {
	if len(checkIns) == 0 {
		return Result{}
	}

	seen := make(map[time.Time]struct{}, len(checkIns))
	for _, d := range checkIns {
		seen[dates.Normalize(d)] = struct{}{}
	}

	current := 0
	day := dates.Normalize(today)
	for {
		if _, ok := seen[day]; !ok {
			break
		}
		current++
		day = day.AddDate(0, 0, -1)
	}

	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if dates.NextDay(days[i-1], days[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return Result{CurrentStreak: current, LongestStreak: longest}
}

// CompletionRate returns checked-in days over days elapsed since the first
// check-in, inclusive of the first day. Clamped to 1.0 and rounded to two
// decimal places. Zero check-ins yield 0.
func CompletionRate(totalCheckIns int, first, today time.Time) float64 {
	if totalCheckIns == 0 {
		return 0
	}
	daysSinceFirst := dates.DaysBetween(first, today) + 1
	if daysSinceFirst <= 0 {
		return 0
	}
	rate := float64(totalCheckIns) / float64(daysSinceFirst)
	if rate > 1 {
		rate = 1
	}
	return math.Round(rate*100) / 100
}

// BuildStats assembles the full statistics block from the check-in dates.
// Dates may arrive in any order.
func BuildStats(checkIns []time.Time, today time.Time) Stats {
	s := Stats{TotalCheckIns: len(checkIns)}
	if len(checkIns) == 0 {
		return s
	}

	sorted := make([]time.Time, len(checkIns))
	for i, d := range checkIns {
		sorted[i] = dates.Normalize(d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	res := Calculate(sorted, today)
	first := sorted[0]
	last := sorted[len(sorted)-1]

	s.CurrentStreak = res.CurrentStreak
	s.LongestStreak = res.LongestStreak
	s.CompletionRate = CompletionRate(len(checkIns), first, today)
	s.FirstCheckIn = &first
	s.LastCheckIn = &last
	return s
}
