package domain

import "time"

// CheckIn marks one habit as done on one calendar day. Date is always
// midnight UTC; the composite unique index is what arbitrates concurrent
// check-in attempts for the same day.
type CheckIn struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	HabitID   int64     `json:"habit_id" gorm:"uniqueIndex:idx_check_ins_habit_date;not null"`
	Habit     Habit     `json:"-" gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE"`
	Date      time.Time `json:"date" gorm:"uniqueIndex:idx_check_ins_habit_date;not null"`
	CreatedAt time.Time `json:"created_at"`
}
