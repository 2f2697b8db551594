package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lingobot-api/internal/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// gormTaskRepository implements TaskRepository using GORM
type gormTaskRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormTaskRepository creates a new GORM-based task repository
func NewGormTaskRepository(db *gorm.DB, logger *zap.Logger) TaskRepository {
	return &gormTaskRepository{
		db:     db,
		logger: logger,
	}
}

func (r *gormTaskRepository) Create(ctx context.Context, task *Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		r.logger.Error("Failed to create task", zap.Error(err))
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *gormTaskRepository) GetByID(ctx context.Context, id int64) (*Task, error) {
	var task Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundError{Resource: "Task", ID: common.TaskID(id).String()}
		}
		r.logger.Error("Failed to get task", zap.Int64("taskID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

func (r *gormTaskRepository) ListByUser(ctx context.Context, telegramID int64) ([]*Task, error) {
	var list []*Task
	err := r.db.WithContext(ctx).
		Where("telegram_id = ? OR telegram_id IS NULL", telegramID).
		Order("date ASC, id ASC").
		Find(&list).Error
	if err != nil {
		r.logger.Error("Failed to list tasks", zap.Int64("telegramID", telegramID), zap.Error(err))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return list, nil
}

func (r *gormTaskRepository) ListByUserAndDate(ctx context.Context, telegramID int64, date time.Time) ([]*Task, error) {
	var list []*Task
	err := r.db.WithContext(ctx).
		Where("(telegram_id = ? OR telegram_id IS NULL) AND date = ?", telegramID, date.Format("2006-01-02")).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		r.logger.Error("Failed to list tasks by date", zap.Int64("telegramID", telegramID), zap.Error(err))
		return nil, fmt.Errorf("failed to list tasks by date: %w", err)
	}
	return list, nil
}

func (r *gormTaskRepository) Update(ctx context.Context, task *Task) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		r.logger.Error("Failed to update task", zap.Int64("taskID", task.ID), zap.Error(result.Error))
		return fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.NotFoundError{Resource: "Task", ID: common.TaskID(task.ID).String()}
	}
	return nil
}

func (r *gormTaskRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&Task{}, "id = ?", id)
	if result.Error != nil {
		r.logger.Error("Failed to delete task", zap.Int64("taskID", id), zap.Error(result.Error))
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.NotFoundError{Resource: "Task", ID: common.TaskID(id).String()}
	}
	return nil
}
