package v1_test

import (
	"testing"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/api/validator"
	v1 "github.com/Reventlow/lectio-msg-via-playwright-api/internal/api/v1"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/constants"
	"github.com/stretchr/testify/assert"
)

func validRequest() v1.SendMessageRequest {
	return v1.SendMessageRequest{
		PortalID:  "234",
		Username:  "demo",
		Password:  "x",
		Recipient: "Jane",
		Subject:   "Hi",
		Body:      "Test",
	}
}

func TestSendMessageRequest_Validation(t *testing.T) {
	validate := validator.New()

	t.Run("accepts a complete request", func(t *testing.T) {
		request := validRequest()
		assert.Empty(t, validate.Validate(&request))
	})

	t.Run("rejects each missing required field by json name", func(t *testing.T) {
		cases := []struct {
			field  string
			mutate func(*v1.SendMessageRequest)
		}{
			{"portal_id", func(r *v1.SendMessageRequest) { r.PortalID = "" }},
			{"username", func(r *v1.SendMessageRequest) { r.Username = "" }},
			{"password", func(r *v1.SendMessageRequest) { r.Password = "" }},
			{"recipient", func(r *v1.SendMessageRequest) { r.Recipient = "" }},
			{"subject", func(r *v1.SendMessageRequest) { r.Subject = "" }},
			{"body", func(r *v1.SendMessageRequest) { r.Body = "" }},
		}

		for _, tc := range cases {
			t.Run(tc.field, func(t *testing.T) {
				request := validRequest()
				tc.mutate(&request)

				errs := validate.Validate(&request)

				assert.Len(t, errs, 1)
				assert.Equal(t, tc.field, errs[0].FailedField)
				assert.Equal(t, "required", errs[0].Tag)
			})
		}
	})

	t.Run("reports every failed field in one message", func(t *testing.T) {
		request := validRequest()
		request.Recipient = ""
		request.Body = ""

		message := validator.Message(constants.MessageErrorFormat, validate.Validate(&request))

		assert.Contains(t, message, "field recipient is required")
		assert.Contains(t, message, "field body is required")
		assert.Contains(t, message, " and ")
	})

	t.Run("allow_reply is optional and defaults to true", func(t *testing.T) {
		request := validRequest()
		assert.Empty(t, validate.Validate(&request))
		assert.True(t, request.ReplyAllowed())

		no := false
		request.AllowReply = &no
		assert.False(t, request.ReplyAllowed())
	})
}
