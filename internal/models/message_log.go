package models

import "time"

// MessageLog is one entry of the append-only message audit trail.
// Entries are never updated or deleted by the bot; retention is an
// operational concern.
type MessageLog struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Timestamp   time.Time `gorm:"index;not null"`
	UserID      int64     `gorm:"index;not null"`
	Username    string    `gorm:"type:varchar(255)"`
	MessageText string    `gorm:"type:text"`
	IsToxic     bool      `gorm:"index"`
}
