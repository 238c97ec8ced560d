package constants

const (
	ErrCodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeQueueUnavailable   = "QUEUE_UNAVAILABLE"
	ErrCodeTaskNotFound       = "TASK_NOT_FOUND"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// MessageErrorFormat renders one failed request field for the client.
const MessageErrorFormat = "field %s is required"

const (
	ErrMsgInvalidRequestBody = "failed to parse request body"
	ErrMsgValidation         = "missing or empty required field"
	ErrMsgQueueUnavailable   = "task queue is unavailable"
	ErrMsgTaskNotFound       = "task not found"
	ErrMsgInternalError      = "Internal server error"
)

var errorMessages = map[string]string{
	ErrCodeInvalidRequestBody: ErrMsgInvalidRequestBody,
	ErrCodeValidation:         ErrMsgValidation,
	ErrCodeQueueUnavailable:   ErrMsgQueueUnavailable,
	ErrCodeTaskNotFound:       ErrMsgTaskNotFound,
	ErrCodeInternalError:      ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody, ErrCodeValidation:
		return 400
	case ErrCodeTaskNotFound:
		return 404
	case ErrCodeQueueUnavailable:
		return 503
	case ErrCodeInternalError:
		return 500
	default:
		return 500
	}
}
