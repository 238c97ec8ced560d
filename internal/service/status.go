package service

import (
	"context"
	"time"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/constants"
	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/mq"
	"go.uber.org/zap"
)

// QueueInspector is the slice of pkg/mq the status endpoint needs.
type QueueInspector interface {
	Inspect(queue string) (mq.QueueStats, error)
}

type StatusService interface {
	QueueStatus(ctx context.Context) (QueueStatusResponse, error)
}

type status struct {
	inspector QueueInspector
	queue     string
	logger    *zap.Logger
}

func NewStatusService(inspector QueueInspector, cfg mq.Config, logger *zap.Logger) StatusService {
	return &status{inspector: inspector, queue: cfg.Queue, logger: logger}
}

func (s *status) QueueStatus(ctx context.Context) (QueueStatusResponse, error) {
	stats, err := s.inspector.Inspect(s.queue)
	if err != nil {
		s.logger.Error("Failed to inspect queue",
			zap.Error(err),
			zap.String("queue", s.queue))
		return QueueStatusResponse{}, NewServiceError(constants.ErrCodeQueueUnavailable, err)
	}

	return QueueStatusResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Queue: QueueStats{
			Name:      stats.Name,
			Messages:  stats.Messages,
			Consumers: stats.Consumers,
		},
	}, nil
}
