package repository

import (
	"context"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/model"
	"gorm.io/gorm"
)

type TaskLogRepository interface {
	Create(ctx context.Context, log *model.TaskLog) error
	FindAll() ([]model.TaskLog, error)
	FindByTaskID(taskID string) ([]model.TaskLog, error)
	FindByReceiver(receiver string) ([]model.TaskLog, error)
}

type TaskLog struct {
	db *gorm.DB
}

func NewTaskLogRepository(db *gorm.DB) TaskLogRepository {
	return &TaskLog{db: db}
}

func (r *TaskLog) Create(ctx context.Context, log *model.TaskLog) error {
	db := GetTx(ctx, r.db)
	return db.Create(log).Error
}

func (r *TaskLog) FindAll() ([]model.TaskLog, error) {
	var logs []model.TaskLog

	err := r.db.Order("timestamp ASC, id ASC").Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *TaskLog) FindByTaskID(taskID string) ([]model.TaskLog, error) {
	var logs []model.TaskLog

	err := r.db.Where("task_id = ?", taskID).
		Order("timestamp ASC, id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *TaskLog) FindByReceiver(receiver string) ([]model.TaskLog, error) {
	var logs []model.TaskLog

	err := r.db.Where("receiver = ?", receiver).
		Order("timestamp ASC, id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return logs, nil
}
