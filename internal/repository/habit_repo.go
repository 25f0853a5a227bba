package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"habitflow/internal/domain"
)

type HabitRepository struct {
	db *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{db: db}
}

func (r *HabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	return r.db.WithContext(ctx).Create(h).Error
}

// GetByID scopes the lookup to the owning user; a habit owned by someone else
// is indistinguishable from a missing one.
func (r *HabitRepository) GetByID(ctx context.Context, userID, habitID int64) (*domain.Habit, error) {
	var h domain.Habit
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", habitID, userID).
		First(&h).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &h, nil
}

func (r *HabitRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Habit, error) {
	var habits []domain.Habit
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&habits).Error
	return habits, err
}

// Update applies the non-nil fields of upd and returns the refreshed habit.
// The update map is assembled from a fixed field set, never from request
// strings.
func (r *HabitRepository) Update(ctx context.Context, userID, habitID int64, upd domain.HabitUpdate) (*domain.Habit, error) {
	updates := map[string]any{}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.Kind != nil {
		updates["kind"] = *upd.Kind
	}
	if upd.Frequency != nil {
		updates["frequency"] = *upd.Frequency
	}

	tx := r.db.WithContext(ctx).Model(&domain.Habit{}).
		Where("id = ? AND user_id = ?", habitID, userID).
		Updates(updates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, userID, habitID)
}

// Delete removes the habit; its check-ins go with it via the FK cascade.
func (r *HabitRepository) Delete(ctx context.Context, userID, habitID int64) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", habitID, userID).
		Delete(&domain.Habit{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ActiveUserIDs returns the distinct owners of habits checked in since the
// given time. Used by the cache warmer.
func (r *HabitRepository) ActiveUserIDs(ctx context.Context, since time.Time) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Table("habits").
		Distinct("habits.user_id").
		Joins("INNER JOIN check_ins ON check_ins.habit_id = habits.id").
		Where("check_ins.created_at > ?", since).
		Pluck("habits.user_id", &ids).Error
	return ids, err
}
