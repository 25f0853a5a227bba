package habit

type CreateHabitRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Frequency   string `json:"frequency"`
}

// UpdateHabitRequest carries partial-field semantics: absent fields stay
// untouched.
type UpdateHabitRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Kind        *string `json:"kind"`
	Frequency   *string `json:"frequency"`
}

type StreakResponse struct {
	HabitID       int64 `json:"habitId"`
	CurrentStreak int   `json:"currentStreak"`
	LongestStreak int   `json:"longestStreak"`
}

type StatsResponse struct {
	HabitID        int64   `json:"habitId"`
	Name           string  `json:"name"`
	Kind           string  `json:"kind"`
	TotalCheckIns  int     `json:"totalCheckIns"`
	CurrentStreak  int     `json:"currentStreak"`
	LongestStreak  int     `json:"longestStreak"`
	CompletionRate float64 `json:"completionRate"`
	FirstCheckIn   *string `json:"firstCheckIn"`
	LastCheckIn    *string `json:"lastCheckIn"`
}

// OverviewStat is one row of the aggregate per-user stats view.
type OverviewStat struct {
	HabitID       int64  `json:"habitId"`
	Name          string `json:"name"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
}
