package models

import "time"

// UserRecord stores the per-user violation counter.
// A record is created the first time a user's message is processed and is
// never deleted; the counter only grows through the violation store.
type UserRecord struct {
	UserID         int64  `gorm:"primaryKey"`
	Username       string `gorm:"type:varchar(255)"`
	ViolationCount int    `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
