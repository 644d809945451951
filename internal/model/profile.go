package model

import "time"

// Theme preferences.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UserProfile holds per-user preferences. Exactly one row per user,
// created together with the account.
type UserProfile struct {
	ID                        uint   `gorm:"primaryKey"`
	UserID                    uint   `gorm:"uniqueIndex"`
	EmailNotificationsEnabled bool   `gorm:"default:true"`
	ThemePreference           string `gorm:"size:10;default:light"`
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}
