package mocks

import (
	"context"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/model"
	"github.com/stretchr/testify/mock"
)

type TaskLogRepository struct {
	mock.Mock
}

func (m *TaskLogRepository) Create(ctx context.Context, log *model.TaskLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *TaskLogRepository) FindAll() ([]model.TaskLog, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskLog), args.Error(1)
}

func (m *TaskLogRepository) FindByTaskID(taskID string) ([]model.TaskLog, error) {
	args := m.Called(taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskLog), args.Error(1)
}

func (m *TaskLogRepository) FindByReceiver(receiver string) ([]model.TaskLog, error) {
	args := m.Called(receiver)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskLog), args.Error(1)
}
