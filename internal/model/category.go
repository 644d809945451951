package model

import "time"

// Category groups tasks by area (Home, Work, Personal, ...).
// The (user_id, name) pair is kept unique by the services, not the schema.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index:idx_category_user_name"`
	Name      string `gorm:"size:100;index:idx_category_user_name"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:CategoryID"`
}
