package consumers

import (
	"context"
	"encoding/json"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/service"
	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/mq"
	"go.uber.org/zap"
)

type SendConsumer interface {
	Consume(ctx context.Context) error
}

type sendConsumer struct {
	service  service.SendService
	consumer mq.Consumer
	queue    string
	prefetch int
	logger   *zap.Logger
}

func NewSendConsumer(svc service.SendService, consumer mq.Consumer, queue string, prefetch int,
	logger *zap.Logger) SendConsumer {
	return &sendConsumer{
		service:  svc,
		consumer: consumer,
		queue:    queue,
		prefetch: prefetch,
		logger:   logger,
	}
}

func (s *sendConsumer) Consume(ctx context.Context) error {
	return s.consumer.Consume(ctx, s.prefetch, s.queue, s.handleDelivery)
}

func (s *sendConsumer) handleDelivery(ctx context.Context, body []byte) error {
	var cmd service.SendTaskCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		s.logger.Warn("invalid send command", zap.Error(err))
		return err
	}

	s.logger.Info("received send command",
		zap.String("taskID", cmd.TaskID),
		zap.String("recipient", cmd.Recipient))

	return s.service.SendTask(ctx, cmd)
}
