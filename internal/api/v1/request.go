package v1

type SendMessageRequest struct {
	PortalID   string `json:"portal_id" validate:"required"`
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Recipient  string `json:"recipient" validate:"required"`
	Subject    string `json:"subject" validate:"required"`
	Body       string `json:"body" validate:"required"`
	AllowReply *bool  `json:"allow_reply"`
}

// ReplyAllowed resolves the optional allow_reply flag; omitted means true.
func (r *SendMessageRequest) ReplyAllowed() bool {
	if r.AllowReply == nil {
		return true
	}
	return *r.AllowReply
}
