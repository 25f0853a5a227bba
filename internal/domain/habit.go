package domain

import "time"

// Habit kinds: something the user wants to build up or break off.
const (
	KindBuild = "build"
	KindBreak = "break"
)

// ValidKind reports whether k is a recognized habit kind.
func ValidKind(k string) bool {
	return k == KindBuild || k == KindBreak
}

// Habit belongs to exactly one user. Deleting a habit cascades to its
// check-ins.
type Habit struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"user_id" gorm:"index;not null"`
	User        User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Kind        string    `json:"kind" gorm:"size:16;not null;default:build"`
	Frequency   string    `json:"frequency" gorm:"size:32;not null;default:daily"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HabitUpdate carries a partial update: nil means "leave the field alone".
// The repository translates it into a fixed update statement, so no SQL is
// ever assembled from request content.
type HabitUpdate struct {
	Name        *string
	Description *string
	Kind        *string
	Frequency   *string
}

// Empty reports whether the update touches no fields.
func (u HabitUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Kind == nil && u.Frequency == nil
}
