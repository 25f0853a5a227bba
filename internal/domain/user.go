package domain

import "time"

// User is the owner of habits and the subject of issued tokens.
// PasswordHash is empty for accounts created through Google sign-in.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	GoogleID     *string   `json:"-" gorm:"index"`
	Name         string    `json:"name" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
