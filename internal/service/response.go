package service

type CreateTaskResponse struct {
	TaskID string `json:"task_id"`
}

type TaskResponse struct {
	TaskID     string  `json:"task_id"`
	PortalID   string  `json:"portal_id"`
	Recipient  string  `json:"recipient"`
	Subject    string  `json:"subject"`
	Status     string  `json:"status"`
	LastError  *string `json:"last_error,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
	AllowReply bool    `json:"allow_reply"`
}

type TaskLogEntry struct {
	ID          int64  `json:"id"`
	Timestamp   string `json:"timestamp"`
	Level       string `json:"level"`
	TaskID      string `json:"task_id"`
	Receiver    string `json:"receiver"`
	Description string `json:"description"`
}

type QueueStatusResponse struct {
	Timestamp string     `json:"timestamp"`
	Queue     QueueStats `json:"queue"`
}

type QueueStats struct {
	Name      string `json:"name"`
	Messages  int    `json:"messages"`
	Consumers int    `json:"consumers"`
}
