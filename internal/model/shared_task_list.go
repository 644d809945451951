package model

import "time"

// Share permissions.
const (
	PermissionViewOnly = "view_only"
	PermissionEditable = "editable"
)

// SharedTaskList records a task shared with another user. A task can be
// shared with a given user at most once.
type SharedTaskList struct {
	ID               uint   `gorm:"primaryKey"`
	TaskID           uint   `gorm:"index:idx_share_task_user,unique"`
	SharedWithUserID uint   `gorm:"index:idx_share_task_user,unique"`
	Permission       string `gorm:"size:10;default:view_only"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
