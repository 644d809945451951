package model

import "time"

// Recurrence frequencies.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// RecurringTask stores the repeat pattern for a task. Nothing in the
// application schedules these; the rows are data only.
type RecurringTask struct {
	ID        uint   `gorm:"primaryKey"`
	TaskID    uint   `gorm:"uniqueIndex"`
	Frequency string `gorm:"size:10"`
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
