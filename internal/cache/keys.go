package cache

import (
	"fmt"
	"time"
)

// Cache key schema. Colon-delimited and namespaced by user so that one user's
// entries can be purged with a single pattern.
//
//	user:<userId>:habits            habits list
//	user:<userId>:habits:stats      aggregate stats view
//	user:<userId>:profile           user profile
//	habit:<habitId>:user:<userId>   single habit
//	stats:user:<userId>:habit:<habitId>
//	streak:user:<userId>:habit:<habitId>
//	checkin:user:<userId>:habit:<habitId>
func UserHabits(userID int64) string {
	return fmt.Sprintf("user:%d:habits", userID)
}

func UserHabitsStats(userID int64) string {
	return fmt.Sprintf("user:%d:habits:stats", userID)
}

func UserProfile(userID int64) string {
	return fmt.Sprintf("user:%d:profile", userID)
}

func HabitDetails(userID, habitID int64) string {
	return fmt.Sprintf("habit:%d:user:%d", habitID, userID)
}

func HabitStats(userID, habitID int64) string {
	return fmt.Sprintf("stats:user:%d:habit:%d", userID, habitID)
}

func HabitStreak(userID, habitID int64) string {
	return fmt.Sprintf("streak:user:%d:habit:%d", userID, habitID)
}

func HabitCheckIns(userID, habitID int64) string {
	return fmt.Sprintf("checkin:user:%d:habit:%d", userID, habitID)
}

// HealthStatus caches the health probe result briefly.
const HealthStatus = "health:status"

// Deletion patterns.

// AllHabitKeys matches every derived key for one habit (stats, streak,
// check-in list).
func AllHabitKeys(userID, habitID int64) string {
	return fmt.Sprintf("*:user:%d:habit:%d*", userID, habitID)
}

// AllUserKeys matches every key in a user's namespace, including the
// user-prefixed list keys.
func AllUserKeys(userID int64) string {
	return fmt.Sprintf("*user:%d:*", userID)
}

// UserListKeys matches the user's aggregate views (habits list and aggregate
// stats live under the user:<id>:habits prefix).
func UserListKeys(userID int64) string {
	return fmt.Sprintf("user:%d:habits*", userID)
}

// LegacyListKeys matches list-style keys written by older response cache
// layers.
func LegacyListKeys(userID int64) string {
	return fmt.Sprintf("*:user:%d:list*", userID)
}

// TTLs per data class.
const (
	TTLHabitsList  = 300 * time.Second
	TTLHabitSingle = 600 * time.Second
	TTLStats       = 300 * time.Second
	TTLStreak      = 300 * time.Second
	TTLCheckIns    = 600 * time.Second
	TTLUserProfile = 1800 * time.Second
	TTLHealth      = 30 * time.Second
)
