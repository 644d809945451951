package model

import "time"

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task represents a single to-do item.
type Task struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index"`
	CategoryID  *uint  `gorm:"index"`
	Title       string `gorm:"size:255"`
	Description string
	IsCompleted bool   `gorm:"default:false"`
	Priority    string `gorm:"size:10;default:medium"`
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category   *Category        `gorm:"foreignKey:CategoryID"`
	Notes      []TaskNote       `gorm:"foreignKey:TaskID"`
	Recurrence *RecurringTask   `gorm:"foreignKey:TaskID"`
	SharedWith []SharedTaskList `gorm:"foreignKey:TaskID"`
}

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// PriorityRank returns the sort ordinal for a priority, high first.
// Unrecognized values rank with medium.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityLow:
		return 3
	default:
		return 2
	}
}
