package main

import (
	"context"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/api"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/api/middleware"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/api/validator"
	v1 "github.com/Reventlow/lectio-msg-via-playwright-api/internal/api/v1"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/config"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/repository"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/service"
	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/mq"
	"github.com/Reventlow/lectio-msg-via-playwright-api/pkg/mysql"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewFiberApp,
			validator.New,

			NewConnectionDB,
			NewMQConnection,
			NewMQPublisher,
			NewQueueInspector,
			NewQueueConfig,

			repository.NewTaskRepository,
			repository.NewTaskLogRepository,
			repository.NewTransactionManager,

			service.NewTaskService,
			service.NewLogService,
			service.NewStatusService,

			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, rabbit *mq.RabbitMQ,
	logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{cfg.RabbitMQ.Queue}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}
			logger.Info("queue declared", zap.String("queue", cfg.RabbitMQ.Queue))

			go app.Listen(cfg.API.Port)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := app.ShutdownWithContext(ctx); err != nil {
				return err
			}
			return rabbit.Close()
		},
	})
}

func NewFiberApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}

func NewQueueInspector(rabbitMQ *mq.RabbitMQ) service.QueueInspector {
	return rabbitMQ
}

func NewQueueConfig(cfg *config.Config) mq.Config {
	return cfg.RabbitMQ
}
