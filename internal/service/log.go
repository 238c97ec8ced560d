package service

import (
	"context"
	"time"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/constants"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/model"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/repository"
	"go.uber.org/zap"
)

type LogService interface {
	ListAll(ctx context.Context) ([]TaskLogEntry, error)
	ListByTaskID(ctx context.Context, taskID string) ([]TaskLogEntry, error)
	ListByReceiver(ctx context.Context, receiver string) ([]TaskLogEntry, error)
}

type logService struct {
	logRepo repository.TaskLogRepository
	logger  *zap.Logger
}

func NewLogService(logRepo repository.TaskLogRepository, logger *zap.Logger) LogService {
	return &logService{logRepo: logRepo, logger: logger}
}

func (l *logService) ListAll(ctx context.Context) ([]TaskLogEntry, error) {
	logs, err := l.logRepo.FindAll()
	if err != nil {
		l.logger.Error("Failed to list task logs", zap.Error(err))
		return nil, NewServiceError(constants.ErrCodeInternalError, err)
	}

	return toEntries(logs), nil
}

func (l *logService) ListByTaskID(ctx context.Context, taskID string) ([]TaskLogEntry, error) {
	logs, err := l.logRepo.FindByTaskID(taskID)
	if err != nil {
		l.logger.Error("Failed to list task logs",
			zap.Error(err),
			zap.String("taskID", taskID))
		return nil, NewServiceError(constants.ErrCodeInternalError, err)
	}

	return toEntries(logs), nil
}

func (l *logService) ListByReceiver(ctx context.Context, receiver string) ([]TaskLogEntry, error) {
	logs, err := l.logRepo.FindByReceiver(receiver)
	if err != nil {
		l.logger.Error("Failed to list task logs",
			zap.Error(err),
			zap.String("receiver", receiver))
		return nil, NewServiceError(constants.ErrCodeInternalError, err)
	}

	return toEntries(logs), nil
}

func toEntries(logs []model.TaskLog) []TaskLogEntry {
	entries := make([]TaskLogEntry, 0, len(logs))
	for _, log := range logs {
		entries = append(entries, TaskLogEntry{
			ID:          log.ID,
			Timestamp:   log.Timestamp.UTC().Format(time.RFC3339),
			Level:       log.Level,
			TaskID:      log.TaskID,
			Receiver:    log.Receiver,
			Description: log.Description,
		})
	}

	return entries
}
