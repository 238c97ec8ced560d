package service

import "errors"

var (
	ErrTaskNotFound         = errors.New("TASK_NOT_FOUND")
	ErrTaskBeingProcessed   = errors.New("TASK_BEING_PROCESSED")
	ErrTaskAlreadyProcessed = errors.New("TASK_ALREADY_PROCESSED")
	ErrUnknownTaskStatus    = errors.New("UNKNOWN_TASK_STATUS")
	ErrDatabase             = errors.New("DATABASE_ERROR")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
