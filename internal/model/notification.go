package model

import "time"

// Notification types.
const (
	NotificationDueSoon   = "due_soon"
	NotificationOverdue   = "overdue"
	NotificationShared    = "shared"
	NotificationCompleted = "completed"
)

// Notification tracks an email notification queued for a task. SentAt is
// nil until delivery; no delivery pipeline runs in this application.
type Notification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	TaskID    uint   `gorm:"index"`
	Type      string `gorm:"size:20"`
	SentAt    *time.Time
	CreatedAt time.Time
}
