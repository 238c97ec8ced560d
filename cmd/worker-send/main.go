package main

import (
	"context"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/config"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/consumers"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/repository"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/service"
	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/mq"
	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/mysql"
	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/portal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,

			NewConnectionDB,
			NewMQConnection,
			NewMQConsumer,
			NewPortalClient,

			repository.NewTaskRepository,
			repository.NewTaskLogRepository,
			repository.NewTransactionManager,

			service.NewSendService,

			NewSendConsumer,
		),
		fx.Invoke(runSendConsumer),
	).Run()
}

func runSendConsumer(cfg *config.Config, sendConsumer consumers.SendConsumer, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{cfg.RabbitMQ.Queue}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}
			logger.Info("queue declared", zap.String("queue", cfg.RabbitMQ.Queue))

			go func() {
				if err := sendConsumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("send consumer started", zap.Int("prefetch", cfg.Worker.Prefetch))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping send consumer")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}

func NewPortalClient(cfg *config.Config, logger *zap.Logger) portal.Client {
	return portal.NewClient(cfg.Portal, logger)
}

func NewSendConsumer(svc service.SendService, consumer mq.Consumer, cfg *config.Config,
	logger *zap.Logger) consumers.SendConsumer {
	return consumers.NewSendConsumer(svc, consumer, cfg.RabbitMQ.Queue, cfg.Worker.Prefetch, logger)
}
