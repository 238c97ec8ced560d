package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/constants"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/mocks"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/model"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/repository"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/service"
	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/mq"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var queueCfg = mq.Config{URL: "amqp://localhost", Queue: "lectio.send"}

func TestTask_CreateTask(t *testing.T) {
	logger := zap.NewNop()

	cmd := service.CreateTaskCommand{
		PortalID:   "234",
		Username:   "demo",
		Password:   "x",
		Recipient:  "Jane",
		Subject:    "Hi",
		Body:       "Test",
		AllowReply: false,
	}

	t.Run("creates task and publishes send command", func(t *testing.T) {
		mockTaskRepo := &mocks.TaskRepository{}
		mockLogRepo := &mocks.TaskLogRepository{}
		mockTxManager := &mocks.TxManager{}
		mockPublisher := &mocks.Publisher{}

		svc := service.NewTaskService(mockTaskRepo, mockLogRepo, mockTxManager, mockPublisher, queueCfg, logger)

		mockTxManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)

		mockTaskRepo.On("Create", context.Background(),
			mock.MatchedBy(func(task *model.Task) bool {
				return task.PortalID == cmd.PortalID &&
					task.Recipient == cmd.Recipient &&
					task.Subject == cmd.Subject &&
					task.Body == cmd.Body &&
					task.AllowReply == false &&
					task.Status == model.TaskStatusSubmitted &&
					task.Published == false
			})).Return(nil)

		mockLogRepo.On("Create", context.Background(),
			mock.MatchedBy(func(entry *model.TaskLog) bool {
				return entry.Level == model.TaskLogLevelInfo &&
					entry.Receiver == cmd.Recipient &&
					entry.TaskID != ""
			})).Return(nil)

		mockPublisher.On("Publish", context.Background(), "", "lectio.send",
			mock.MatchedBy(func(body []byte) bool {
				var sendCmd service.SendTaskCommand
				if err := json.Unmarshal(body, &sendCmd); err != nil {
					return false
				}
				return sendCmd.PortalID == cmd.PortalID &&
					sendCmd.Username == cmd.Username &&
					sendCmd.Password == cmd.Password &&
					sendCmd.Recipient == cmd.Recipient &&
					sendCmd.TaskID != ""
			})).Return(nil)

		mockTaskRepo.On("MarkPublished", context.Background(),
			mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

		resp, err := svc.CreateTask(context.Background(), cmd)

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.TaskID)

		_, parseErr := uuid.Parse(resp.TaskID)
		assert.NoError(t, parseErr)

		mockTxManager.AssertExpectations(t)
		mockTaskRepo.AssertExpectations(t)
		mockLogRepo.AssertExpectations(t)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("issues a distinct task id per submission", func(t *testing.T) {
		mockTaskRepo := &mocks.TaskRepository{}
		mockLogRepo := &mocks.TaskLogRepository{}
		mockTxManager := &mocks.TxManager{}
		mockPublisher := &mocks.Publisher{}

		svc := service.NewTaskService(mockTaskRepo, mockLogRepo, mockTxManager, mockPublisher, queueCfg, logger)

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockTaskRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		mockLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		mockPublisher.On("Publish", mock.Anything, "", "lectio.send", mock.Anything).Return(nil)
		mockTaskRepo.On("MarkPublished", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		seen := map[string]bool{}
		for i := 0; i < 10; i++ {
			resp, err := svc.CreateTask(context.Background(), cmd)
			assert.NoError(t, err)
			assert.False(t, seen[resp.TaskID], "task id %s issued twice", resp.TaskID)
			seen[resp.TaskID] = true
		}
	})

	t.Run("returns queue unavailable when publish fails", func(t *testing.T) {
		mockTaskRepo := &mocks.TaskRepository{}
		mockLogRepo := &mocks.TaskLogRepository{}
		mockTxManager := &mocks.TxManager{}
		mockPublisher := &mocks.Publisher{}

		svc := service.NewTaskService(mockTaskRepo, mockLogRepo, mockTxManager, mockPublisher, queueCfg, logger)

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockTaskRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		mockLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		mockPublisher.On("Publish", mock.Anything, "", "lectio.send", mock.Anything).
			Return(errors.New("connection refused"))

		_, err := svc.CreateTask(context.Background(), cmd)

		assert.Error(t, err)

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeQueueUnavailable, serviceErr.Code)

		mockTaskRepo.AssertNotCalled(t, "MarkPublished", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns error when task insert fails", func(t *testing.T) {
		mockTaskRepo := &mocks.TaskRepository{}
		mockLogRepo := &mocks.TaskLogRepository{}
		mockTxManager := &mocks.TxManager{}
		mockPublisher := &mocks.Publisher{}

		svc := service.NewTaskService(mockTaskRepo, mockLogRepo, mockTxManager, mockPublisher, queueCfg, logger)

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockTaskRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		_, err := svc.CreateTask(context.Background(), cmd)

		assert.Error(t, err)
		mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTask_GetTask(t *testing.T) {
	logger := zap.NewNop()

	t.Run("returns task by id", func(t *testing.T) {
		mockTaskRepo := &mocks.TaskRepository{}
		mockLogRepo := &mocks.TaskLogRepository{}
		mockTxManager := &mocks.TxManager{}
		mockPublisher := &mocks.Publisher{}

		svc := service.NewTaskService(mockTaskRepo, mockLogRepo, mockTxManager, mockPublisher, queueCfg, logger)

		record := &model.Task{
			ID:        "task-1",
			PortalID:  "234",
			Recipient: "Jane",
			Status:    model.TaskStatusSucceeded,
		}

		mockTaskRepo.On("GetByID", "task-1").Return(record, nil)

		resp, err := svc.GetTask(context.Background(), "task-1")

		assert.NoError(t, err)
		assert.Equal(t, "task-1", resp.TaskID)
		assert.Equal(t, string(model.TaskStatusSucceeded), resp.Status)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		mockTaskRepo := &mocks.TaskRepository{}
		mockLogRepo := &mocks.TaskLogRepository{}
		mockTxManager := &mocks.TxManager{}
		mockPublisher := &mocks.Publisher{}

		svc := service.NewTaskService(mockTaskRepo, mockLogRepo, mockTxManager, mockPublisher, queueCfg, logger)

		mockTaskRepo.On("GetByID", "missing").Return(nil, repository.ErrTaskNotFound)

		_, err := svc.GetTask(context.Background(), "missing")

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeTaskNotFound, serviceErr.Code)
	})
}
