package mocks

import (
	"context"
	"time"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/model"
	"github.com/stretchr/testify/mock"
)

type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *TaskRepository) UpdateForRunning(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *TaskRepository) MarkPublished(ctx context.Context, taskID string, publishedAt time.Time) error {
	args := m.Called(ctx, taskID, publishedAt)
	return args.Error(0)
}

func (m *TaskRepository) GetByID(taskID string) (*model.Task, error) {
	args := m.Called(taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}
