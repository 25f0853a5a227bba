package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"habitflow/internal/domain"
	"habitflow/internal/pkg/dates"
)

type CheckInRepository struct {
	db *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) *CheckInRepository {
	return &CheckInRepository{db: db}
}

// Create inserts one check-in. The (habit_id, date) unique index is the
// arbiter under concurrency: of two simultaneous inserts for the same day
// exactly one succeeds, the other gets ErrDuplicate.
func (r *CheckInRepository) Create(ctx context.Context, c *domain.CheckIn) error {
	c.Date = dates.Normalize(c.Date)
	err := r.db.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *CheckInRepository) ListByHabit(ctx context.Context, habitID int64) ([]domain.CheckIn, error) {
	var checkIns []domain.CheckIn
	err := r.db.WithContext(ctx).
		Where("habit_id = ?", habitID).
		Order("date DESC").
		Find(&checkIns).Error
	return checkIns, err
}

// DatesByHabit returns just the check-in dates, ascending. This is the
// streak engine's input.
func (r *CheckInRepository) DatesByHabit(ctx context.Context, habitID int64) ([]time.Time, error) {
	var days []time.Time
	err := r.db.WithContext(ctx).Model(&domain.CheckIn{}).
		Where("habit_id = ?", habitID).
		Order("date ASC").
		Pluck("date", &days).Error
	return days, err
}

func (r *CheckInRepository) ExistsOnDate(ctx context.Context, habitID int64, day time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.CheckIn{}).
		Where("habit_id = ? AND date = ?", habitID, dates.Normalize(day)).
		Count(&count).Error
	return count > 0, err
}
