package model

import "time"

// MaxDescriptionLength is the longest description a todo may carry, in characters.
const MaxDescriptionLength = 1000

// Todo is a task owned by exactly one user.
type Todo struct {
	ID          string    `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      string    `json:"userId" gorm:"type:char(36);not null;index"`
	Description string    `json:"description" gorm:"size:1000;not null"`
	Completed   bool      `json:"completed" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"not null;autoUpdateTime:false"`
}

