package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("TASK_NOT_FOUND")
var ErrTaskDuplicate = errors.New("TASK_DUPLICATE")
var ErrNoRowsAffected = errors.New("NO_ROWS_AFFECTED")

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	UpdateForRunning(ctx context.Context, task *model.Task) error
	MarkPublished(ctx context.Context, taskID string, publishedAt time.Time) error
	GetByID(taskID string) (*model.Task, error)
}

type Task struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &Task{db: db}
}

func (t *Task) Create(ctx context.Context, task *model.Task) error {
	db := GetTx(ctx, t.db)
	err := db.Create(task).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrTaskDuplicate
	}

	return err
}

func (t *Task) Update(ctx context.Context, task *model.Task) error {
	db := GetTx(ctx, t.db)
	return db.Model(task).Where("id = ?", task.ID).Updates(task).Error
}

// UpdateForRunning claims the task for this worker. The status guard makes
// redeliveries of already-claimed tasks a no-op.
func (t *Task) UpdateForRunning(ctx context.Context, task *model.Task) error {
	db := GetTx(ctx, t.db)
	result := db.Model(task).
		Where("id = ? AND status = ?", task.ID, model.TaskStatusSubmitted).
		Updates(task)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (t *Task) MarkPublished(ctx context.Context, taskID string, publishedAt time.Time) error {
	db := GetTx(ctx, t.db)
	return db.Model(&model.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"published":    true,
			"published_at": publishedAt,
			"updated_at":   time.Now(),
		}).Error
}

func (t *Task) GetByID(taskID string) (*model.Task, error) {
	var task model.Task

	err := t.db.Where("id = ?", taskID).First(&task).Error
	if err == nil {
		return &task, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}

	return nil, err
}
