package mocks

import (
	"context"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/service"
	"github.com/stretchr/testify/mock"
)

type TaskService struct {
	mock.Mock
}

func (t *TaskService) CreateTask(ctx context.Context, cmd service.CreateTaskCommand) (service.CreateTaskResponse, error) {
	args := t.Called(ctx, cmd)
	return args.Get(0).(service.CreateTaskResponse), args.Error(1)
}

func (t *TaskService) GetTask(ctx context.Context, taskID string) (service.TaskResponse, error) {
	args := t.Called(ctx, taskID)
	return args.Get(0).(service.TaskResponse), args.Error(1)
}

type LogService struct {
	mock.Mock
}

func (l *LogService) ListAll(ctx context.Context) ([]service.TaskLogEntry, error) {
	args := l.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.TaskLogEntry), args.Error(1)
}

func (l *LogService) ListByTaskID(ctx context.Context, taskID string) ([]service.TaskLogEntry, error) {
	args := l.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.TaskLogEntry), args.Error(1)
}

func (l *LogService) ListByReceiver(ctx context.Context, receiver string) ([]service.TaskLogEntry, error) {
	args := l.Called(ctx, receiver)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.TaskLogEntry), args.Error(1)
}

type StatusService struct {
	mock.Mock
}

func (s *StatusService) QueueStatus(ctx context.Context) (service.QueueStatusResponse, error) {
	args := s.Called(ctx)
	return args.Get(0).(service.QueueStatusResponse), args.Error(1)
}
