package model

import "time"

// User represents a registered account. Users own zero or more todos.
type User struct {
	ID           string    `json:"id" gorm:"type:char(36);primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt" gorm:"not null;autoCreateTime:false"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"not null;autoUpdateTime:false"`

	Todos []Todo `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
