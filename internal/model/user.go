package model

import "time"

// User represents a registered member of the journal.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:80;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:80;not null"`
	PasswordHash *string   `json:"-" gorm:"size:255"` // nil means no local credential
	Active       bool      `json:"active" gorm:"not null;default:false"`
	IsAdmin      bool      `json:"is_admin" gorm:"not null;default:false"`
	AboutMe      string    `json:"about_me,omitempty" gorm:"size:140"`
	CreatedAt    time.Time `json:"created_at"`
	LastSeen     time.Time `json:"last_seen"`

	// Relations
	FoodItems []FoodItem `json:"-" gorm:"foreignKey:UserID"`
}
