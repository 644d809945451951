package model

import "time"

// TaskNote is a free-form note attached to a task.
type TaskNote struct {
	ID        uint `gorm:"primaryKey"`
	TaskID    uint `gorm:"index"`
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
