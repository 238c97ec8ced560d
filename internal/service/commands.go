package service

type CreateTaskCommand struct {
	PortalID   string
	Username   string
	Password   string
	Recipient  string
	Subject    string
	Body       string
	AllowReply bool
}

// SendTaskCommand is the queue payload. It is the only place credentials
// exist outside the incoming request.
type SendTaskCommand struct {
	TaskID     string `json:"task_id"`
	PortalID   string `json:"portal_id"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Recipient  string `json:"recipient"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	AllowReply bool   `json:"allow_reply"`
}
