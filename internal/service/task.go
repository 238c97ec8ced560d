package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/constants"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/model"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/repository"
	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/mq"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskService interface {
	CreateTask(ctx context.Context, cmd CreateTaskCommand) (CreateTaskResponse, error)
	GetTask(ctx context.Context, taskID string) (TaskResponse, error)
}

type task struct {
	taskRepo  repository.TaskRepository
	logRepo   repository.TaskLogRepository
	txManager repository.TxManager
	publisher mq.Publisher
	queue     string
	logger    *zap.Logger
}

func NewTaskService(taskRepo repository.TaskRepository, logRepo repository.TaskLogRepository,
	txManager repository.TxManager, publisher mq.Publisher, cfg mq.Config, logger *zap.Logger) TaskService {
	return &task{
		taskRepo:  taskRepo,
		logRepo:   logRepo,
		txManager: txManager,
		publisher: publisher,
		queue:     cfg.Queue,
		logger:    logger,
	}
}

// CreateTask persists the task and hands it to the queue. The call returns
// as soon as the command is queued; the actual send happens in the worker.
func (t *task) CreateTask(ctx context.Context, cmd CreateTaskCommand) (CreateTaskResponse, error) {
	taskID := uuid.NewString()

	record := model.Task{
		ID:         taskID,
		PortalID:   cmd.PortalID,
		Recipient:  cmd.Recipient,
		Subject:    cmd.Subject,
		Body:       cmd.Body,
		AllowReply: cmd.AllowReply,
		Status:     model.TaskStatusSubmitted,
		Published:  false,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	entry := model.TaskLog{
		Timestamp:   time.Now(),
		Level:       model.TaskLogLevelInfo,
		TaskID:      taskID,
		Receiver:    cmd.Recipient,
		Description: fmt.Sprintf("Task submitted: send message to %s", cmd.Recipient),
	}

	err := t.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := t.taskRepo.Create(ctx, &record); err != nil {
			t.logger.Warn("Failed to create task", zap.Error(err))
			return NewServiceError(constants.ErrCodeInternalError, err)
		}

		if err := t.logRepo.Create(ctx, &entry); err != nil {
			t.logger.Warn("Failed to create task log", zap.Error(err))
			return NewServiceError(constants.ErrCodeInternalError, err)
		}

		return nil
	})
	if err != nil {
		t.logger.Error("Task transaction failed", zap.Error(err))
		return CreateTaskResponse{}, err
	}

	sendCmd := SendTaskCommand{
		TaskID:     taskID,
		PortalID:   cmd.PortalID,
		Username:   cmd.Username,
		Password:   cmd.Password,
		Recipient:  cmd.Recipient,
		Subject:    cmd.Subject,
		Body:       cmd.Body,
		AllowReply: cmd.AllowReply,
	}

	body, err := json.Marshal(sendCmd)
	if err != nil {
		return CreateTaskResponse{}, NewServiceError(constants.ErrCodeInternalError, err)
	}

	if err := t.publisher.Publish(ctx, "", t.queue, body); err != nil {
		t.logger.Error("Failed to publish task to queue",
			zap.Error(err),
			zap.String("taskID", taskID))
		return CreateTaskResponse{}, NewServiceError(constants.ErrCodeQueueUnavailable, err)
	}

	if err := t.taskRepo.MarkPublished(ctx, taskID, time.Now()); err != nil {
		t.logger.Error("Failed to mark task as published",
			zap.Error(err),
			zap.String("taskID", taskID))
	}

	t.logger.Info("Task submitted",
		zap.String("taskID", taskID),
		zap.String("recipient", cmd.Recipient))

	return CreateTaskResponse{TaskID: taskID}, nil
}

func (t *task) GetTask(ctx context.Context, taskID string) (TaskResponse, error) {
	record, err := t.taskRepo.GetByID(taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return TaskResponse{}, NewServiceError(constants.ErrCodeTaskNotFound, err)
		}

		t.logger.Error("Failed to load task", zap.Error(err), zap.String("taskID", taskID))
		return TaskResponse{}, NewServiceError(constants.ErrCodeInternalError, err)
	}

	return TaskResponse{
		TaskID:     record.ID,
		PortalID:   record.PortalID,
		Recipient:  record.Recipient,
		Subject:    record.Subject,
		Status:     string(record.Status),
		LastError:  record.LastError,
		CreatedAt:  record.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  record.UpdatedAt.UTC().Format(time.RFC3339),
		AllowReply: record.AllowReply,
	}, nil
}
