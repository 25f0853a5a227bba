package habit

import (
	"context"
	"time"

	"habitflow/internal/domain"
)

// HabitRepositoryInterface is habit persistence as the service consumes it.
type HabitRepositoryInterface interface {
	Create(ctx context.Context, h *domain.Habit) error
	GetByID(ctx context.Context, userID, habitID int64) (*domain.Habit, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Habit, error)
	Update(ctx context.Context, userID, habitID int64, upd domain.HabitUpdate) (*domain.Habit, error)
	Delete(ctx context.Context, userID, habitID int64) error
	ActiveUserIDs(ctx context.Context, since time.Time) ([]int64, error)
}

// CheckInRepositoryInterface is check-in persistence.
type CheckInRepositoryInterface interface {
	Create(ctx context.Context, c *domain.CheckIn) error
	ListByHabit(ctx context.Context, habitID int64) ([]domain.CheckIn, error)
	DatesByHabit(ctx context.Context, habitID int64) ([]time.Time, error)
	ExistsOnDate(ctx context.Context, habitID int64, day time.Time) (bool, error)
}

// CacheInvalidator receives mutation events and purges the affected keys
// before the mutating call returns.
type CacheInvalidator interface {
	OnHabitsChanged(ctx context.Context, userID int64)
	OnHabitChanged(ctx context.Context, userID, habitID int64)
	OnCheckInAdded(ctx context.Context, userID, habitID int64)
}
