package portal

import (
	"context"
	"errors"
)

const (
	ErrorCodeAuthFailed     = "AUTH_FAILED"     // login form rejected the credentials
	ErrorCodeTimeout        = "TIMEOUT"         // a step exceeded its deadline
	ErrorCodeUnexpectedPage = "UNEXPECTED_PAGE" // a page marker was missing
	ErrorCodeBrowser        = "BROWSER_ERROR"   // chrome failed outright
)

type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Code
	}
	return e.Code + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code string, err error) *Error {
	return &Error{Code: code, Err: err}
}

// Classify maps any error coming out of the client to one of the error
// codes above. Unknown errors count as browser failures.
func Classify(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCodeTimeout
	}

	return ErrorCodeBrowser
}
