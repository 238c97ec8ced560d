package v1

type SendMessageResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
