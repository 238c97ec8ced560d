package model

import "time"

type TaskStatus string

const (
	TaskStatusSubmitted TaskStatus = "SUBMITTED"
	TaskStatusRunning   TaskStatus = "RUNNING"
	TaskStatusSucceeded TaskStatus = "SUCCEEDED"
	TaskStatusFailed    TaskStatus = "FAILED"
)

// Task is one message-send request. Credentials are never stored here;
// they only travel on the queue payload.
type Task struct {
	ID          string     `gorm:"primaryKey;type:varchar(36);column:id;<-:create"`
	PortalID    string     `gorm:"column:portal_id"`
	Recipient   string     `gorm:"column:recipient"`
	Subject     string     `gorm:"column:subject"`
	Body        string     `gorm:"column:body;type:text"`
	AllowReply  bool       `gorm:"column:allow_reply"`
	Status      TaskStatus `gorm:"column:status"`
	Published   bool       `gorm:"column:published;default:false;not null"`
	PublishedAt *time.Time `gorm:"column:published_at;type:timestamp;null"`
	LastError   *string    `gorm:"column:last_error;type:text;null"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}
