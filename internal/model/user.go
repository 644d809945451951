package model

import "time"

// User is an account holder. Credentials live here, preferences in the
// associated UserProfile.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:150"`
	PasswordHash string `gorm:"not null"`
	IsAdmin      bool   `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Profile    *UserProfile `gorm:"foreignKey:UserID"`
	Categories []Category   `gorm:"foreignKey:UserID"`
	Tasks      []Task       `gorm:"foreignKey:UserID"`
}
