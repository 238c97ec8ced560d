package model

import "time"

const (
	TaskLogLevelInfo    = "INFO"
	TaskLogLevelSuccess = "SUCCESS"
	TaskLogLevelError   = "ERROR"
)

// TaskLog rows are append-only; one row at submission and one terminal
// row per completed task.
type TaskLog struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;<-:create"`
	Timestamp   time.Time `gorm:"type:timestamp;not null"`
	Level       string    `gorm:"type:varchar(20);not null"`
	TaskID      string    `gorm:"type:varchar(36);index;not null"`
	Receiver    string    `gorm:"type:varchar(255)"`
	Description string    `gorm:"type:text"`
}
