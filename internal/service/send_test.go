package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/mocks"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/model"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/repository"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/service"
	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/mq"
	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/portal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestSend_SendTask(t *testing.T) {
	logger := zap.NewNop()

	cmd := service.SendTaskCommand{
		TaskID:     "task-123",
		PortalID:   "234",
		Username:   "demo",
		Password:   "x",
		Recipient:  "Jane",
		Subject:    "Hi",
		Body:       "Test",
		AllowReply: false,
	}

	t.Run("sends message and records success", func(t *testing.T) {
		mockTaskRepo := &mocks.TaskRepository{}
		mockLogRepo := &mocks.TaskLogRepository{}
		mockTxManager := &mocks.TxManager{}
		mockPortal := &mocks.PortalClient{}

		svc := service.NewSendService(mockTaskRepo, mockLogRepo, mockTxManager, mockPortal, logger)

		record := &model.Task{ID: "task-123", Status: model.TaskStatusSubmitted}

		mockTaskRepo.On("GetByID", "task-123").Return(record, nil)

		mockTaskRepo.On("UpdateForRunning", context.Background(),
			mock.MatchedBy(func(task *model.Task) bool {
				return task.ID == "task-123" && task.Status == model.TaskStatusRunning
			})).Return(nil)

		mockPortal.On("SendMessage", context.Background(),
			portal.Credentials{PortalID: "234", Username: "demo", Password: "x"},
			portal.Message{Recipient: "Jane", Subject: "Hi", Body: "Test", AllowReply: false}).
			Return(nil)

		mockTxManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)

		mockTaskRepo.On("Update", context.Background(),
			mock.MatchedBy(func(task *model.Task) bool {
				return task.ID == "task-123" && task.Status == model.TaskStatusSucceeded
			})).Return(nil)

		mockLogRepo.On("Create", context.Background(),
			mock.MatchedBy(func(entry *model.TaskLog) bool {
				return entry.TaskID == "task-123" &&
					entry.Level == model.TaskLogLevelSuccess &&
					entry.Receiver == "Jane"
			})).Return(nil)

		err := svc.SendTask(context.Background(), cmd)

		assert.NoError(t, err)

		mockTaskRepo.AssertExpectations(t)
		mockLogRepo.AssertExpectations(t)
		mockPortal.AssertExpectations(t)
	})

	t.Run("records failure with classified reason on auth error", func(t *testing.T) {
		mockTaskRepo := &mocks.TaskRepository{}
		mockLogRepo := &mocks.TaskLogRepository{}
		mockTxManager := &mocks.TxManager{}
		mockPortal := &mocks.PortalClient{}

		svc := service.NewSendService(mockTaskRepo, mockLogRepo, mockTxManager, mockPortal, logger)

		record := &model.Task{ID: "task-123", Status: model.TaskStatusSubmitted}

		mockTaskRepo.On("GetByID", "task-123").Return(record, nil)
		mockTaskRepo.On("UpdateForRunning", mock.Anything, mock.Anything).Return(nil)

		authErr := &portal.Error{Code: portal.ErrorCodeAuthFailed, Err: errors.New("bad credentials")}
		mockPortal.On("SendMessage", mock.Anything, mock.Anything, mock.Anything).Return(authErr)

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)

		mockTaskRepo.On("Update", mock.Anything,
			mock.MatchedBy(func(task *model.Task) bool {
				return task.ID == "task-123" &&
					task.Status == model.TaskStatusFailed &&
					task.LastError != nil
			})).Return(nil)

		mockLogRepo.On("Create", mock.Anything,
			mock.MatchedBy(func(entry *model.TaskLog) bool {
				return entry.TaskID == "task-123" &&
					entry.Level == model.TaskLogLevelError
			})).Return(nil)

		// portal failures are terminal, the delivery must be acked
		err := svc.SendTask(context.Background(), cmd)
		assert.NoError(t, err)

		mockTaskRepo.AssertExpectations(t)
		mockLogRepo.AssertExpectations(t)
	})

	t.Run("does not requeue a timeout", func(t *testing.T) {
		mockTaskRepo := &mocks.TaskRepository{}
		mockLogRepo := &mocks.TaskLogRepository{}
		mockTxManager := &mocks.TxManager{}
		mockPortal := &mocks.PortalClient{}

		svc := service.NewSendService(mockTaskRepo, mockLogRepo, mockTxManager, mockPortal, logger)

		record := &model.Task{ID: "task-123", Status: model.TaskStatusSubmitted}

		mockTaskRepo.On("GetByID", "task-123").Return(record, nil)
		mockTaskRepo.On("UpdateForRunning", mock.Anything, mock.Anything).Return(nil)

		timeoutErr := &portal.Error{Code: portal.ErrorCodeTimeout, Err: context.DeadlineExceeded}
		mockPortal.On("SendMessage", mock.Anything, mock.Anything, mock.Anything).Return(timeoutErr)

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockTaskRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
		mockLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		err := svc.SendTask(context.Background(), cmd)

		assert.NoError(t, err)

		var tempErr mq.TempError
		assert.False(t, errors.As(err, &tempErr))
	})

	t.Run("skips task already processed", func(t *testing.T) {
		mockTaskRepo := &mocks.TaskRepository{}
		mockLogRepo := &mocks.TaskLogRepository{}
		mockTxManager := &mocks.TxManager{}
		mockPortal := &mocks.PortalClient{}

		svc := service.NewSendService(mockTaskRepo, mockLogRepo, mockTxManager, mockPortal, logger)

		record := &model.Task{ID: "task-123", Status: model.TaskStatusSucceeded}

		mockTaskRepo.On("GetByID", "task-123").Return(record, nil)

		err := svc.SendTask(context.Background(), cmd)

		assert.NoError(t, err)
		mockPortal.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("skips task claimed by another worker", func(t *testing.T) {
		mockTaskRepo := &mocks.TaskRepository{}
		mockLogRepo := &mocks.TaskLogRepository{}
		mockTxManager := &mocks.TxManager{}
		mockPortal := &mocks.PortalClient{}

		svc := service.NewSendService(mockTaskRepo, mockLogRepo, mockTxManager, mockPortal, logger)

		record := &model.Task{ID: "task-123", Status: model.TaskStatusSubmitted}

		mockTaskRepo.On("GetByID", "task-123").Return(record, nil)
		mockTaskRepo.On("UpdateForRunning", mock.Anything, mock.Anything).
			Return(repository.ErrNoRowsAffected)

		err := svc.SendTask(context.Background(), cmd)

		assert.NoError(t, err)
		mockPortal.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns temporary error when database is unavailable", func(t *testing.T) {
		mockTaskRepo := &mocks.TaskRepository{}
		mockLogRepo := &mocks.TaskLogRepository{}
		mockTxManager := &mocks.TxManager{}
		mockPortal := &mocks.PortalClient{}

		svc := service.NewSendService(mockTaskRepo, mockLogRepo, mockTxManager, mockPortal, logger)

		mockTaskRepo.On("GetByID", "task-123").Return(nil, errors.New("db down"))

		err := svc.SendTask(context.Background(), cmd)

		assert.Error(t, err)

		var tempErr mq.TempError
		assert.True(t, errors.As(err, &tempErr))
		mockPortal.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
	})
}
