package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/model"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/repository"
	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/mq"
	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/portal"
	"go.uber.org/zap"
)

type SendService interface {
	SendTask(ctx context.Context, cmd SendTaskCommand) error
}

type send struct {
	taskRepo  repository.TaskRepository
	logRepo   repository.TaskLogRepository
	txManager repository.TxManager
	portal    portal.Client
	logger    *zap.Logger
}

func NewSendService(taskRepo repository.TaskRepository, logRepo repository.TaskLogRepository,
	txManager repository.TxManager, portalClient portal.Client, logger *zap.Logger) SendService {
	return &send{
		taskRepo:  taskRepo,
		logRepo:   logRepo,
		txManager: txManager,
		portal:    portalClient,
		logger:    logger,
	}
}

// SendTask performs one browser-driven send attempt. Portal failures are
// terminal: the task is attempted once per submission, the worker never
// requeues on its own. Only infrastructure errors are handed back to the
// queue as temporary.
func (s *send) SendTask(ctx context.Context, cmd SendTaskCommand) error {
	if err := s.claimTask(ctx, cmd.TaskID); err != nil {
		s.logger.Debug("Task not processable",
			zap.String("taskID", cmd.TaskID),
			zap.Error(err))

		if errors.Is(err, ErrDatabase) {
			return mq.Temporary(err)
		}

		return nil
	}

	s.logger.Info("Sending portal message",
		zap.String("taskID", cmd.TaskID),
		zap.String("portalID", cmd.PortalID),
		zap.String("recipient", cmd.Recipient))

	creds := portal.Credentials{
		PortalID: cmd.PortalID,
		Username: cmd.Username,
		Password: cmd.Password,
	}
	msg := portal.Message{
		Recipient:  cmd.Recipient,
		Subject:    cmd.Subject,
		Body:       cmd.Body,
		AllowReply: cmd.AllowReply,
	}

	sendErr := s.portal.SendMessage(ctx, creds, msg)
	if sendErr == nil {
		s.logger.Info("Portal message sent",
			zap.String("taskID", cmd.TaskID),
			zap.String("recipient", cmd.Recipient))

		if err := s.recordSuccess(ctx, cmd); err != nil {
			return mq.Temporary(err)
		}

		return nil
	}

	reason := portal.Classify(sendErr)
	s.logger.Warn("Portal send failed",
		zap.Error(sendErr),
		zap.String("taskID", cmd.TaskID),
		zap.String("reason", reason))

	if err := s.recordFailure(ctx, cmd, reason, sendErr); err != nil {
		return mq.Temporary(err)
	}

	return nil
}

// claimTask moves the task to RUNNING. Redeliveries of tasks that are
// already running or terminal are dropped.
func (s *send) claimTask(ctx context.Context, taskID string) error {
	record, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}

		return ErrDatabase
	}

	switch record.Status {
	case model.TaskStatusSubmitted:

	case model.TaskStatusRunning:
		s.logger.Warn("Task already being processed", zap.String("taskID", taskID))
		return ErrTaskBeingProcessed

	case model.TaskStatusSucceeded, model.TaskStatusFailed:
		s.logger.Info("Task already processed",
			zap.String("taskID", taskID),
			zap.String("status", string(record.Status)))
		return ErrTaskAlreadyProcessed

	default:
		s.logger.Error("Unknown task status",
			zap.String("status", string(record.Status)),
			zap.String("taskID", taskID))
		return ErrUnknownTaskStatus
	}

	update := model.Task{
		ID:        taskID,
		Status:    model.TaskStatusRunning,
		UpdatedAt: time.Now(),
	}

	err = s.taskRepo.UpdateForRunning(ctx, &update)
	if err == nil {
		return nil
	}

	if errors.Is(err, repository.ErrNoRowsAffected) {
		s.logger.Info("Task claimed by another worker", zap.String("taskID", taskID))
		return ErrTaskBeingProcessed
	}

	s.logger.Error("Failed to claim task", zap.Error(err), zap.String("taskID", taskID))
	return ErrDatabase
}

func (s *send) recordSuccess(ctx context.Context, cmd SendTaskCommand) error {
	record := model.Task{
		ID:        cmd.TaskID,
		Status:    model.TaskStatusSucceeded,
		UpdatedAt: time.Now(),
	}

	entry := model.TaskLog{
		Timestamp:   time.Now(),
		Level:       model.TaskLogLevelSuccess,
		TaskID:      cmd.TaskID,
		Receiver:    cmd.Recipient,
		Description: fmt.Sprintf("Successfully sent message to %s", cmd.Recipient),
	}

	return s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.Update(ctx, &record); err != nil {
			s.logger.Error("Failed to update task after send",
				zap.String("taskID", cmd.TaskID),
				zap.Error(err))
			return err
		}

		if err := s.logRepo.Create(ctx, &entry); err != nil {
			s.logger.Error("Failed to append success log",
				zap.String("taskID", cmd.TaskID),
				zap.Error(err))
			return err
		}

		return nil
	})
}

func (s *send) recordFailure(ctx context.Context, cmd SendTaskCommand, reason string, cause error) error {
	lastError := fmt.Sprintf("%s: %v", reason, cause)

	record := model.Task{
		ID:        cmd.TaskID,
		Status:    model.TaskStatusFailed,
		LastError: &lastError,
		UpdatedAt: time.Now(),
	}

	entry := model.TaskLog{
		Timestamp:   time.Now(),
		Level:       model.TaskLogLevelError,
		TaskID:      cmd.TaskID,
		Receiver:    cmd.Recipient,
		Description: fmt.Sprintf("Error sending message: %s", lastError),
	}

	return s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.Update(ctx, &record); err != nil {
			s.logger.Error("Failed to update task after failure",
				zap.String("taskID", cmd.TaskID),
				zap.Error(err))
			return err
		}

		if err := s.logRepo.Create(ctx, &entry); err != nil {
			s.logger.Error("Failed to append error log",
				zap.String("taskID", cmd.TaskID),
				zap.Error(err))
			return err
		}

		return nil
	})
}
