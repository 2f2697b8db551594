package tasks

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TaskService manages to-do items attached to learners.
type TaskService interface {
	// CreateTask validates and stores a new task. A nil owner creates a
	// shared task visible to every user.
	CreateTask(ctx context.Context, owner *int64, text string, date time.Time) (*Task, error)

	// GetTasks returns a user's own tasks plus the shared ones, oldest
	// date first.
	GetTasks(ctx context.Context, telegramID int64) ([]*Task, error)

	// GetTasksForDate returns a user's own and shared tasks for one
	// calendar date.
	GetTasksForDate(ctx context.Context, telegramID int64, date time.Time) ([]*Task, error)

	// UpdateTask applies a partial update to an existing task.
	UpdateTask(ctx context.Context, id int64, patch TaskPatch) (*Task, error)

	// ToggleDone flips a task's completion flag.
	ToggleDone(ctx context.Context, id int64) (*Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id int64) error
}

// taskService implements the TaskService interface
type taskService struct {
	logger     *zap.Logger
	repository TaskRepository
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(logger *zap.Logger, repository TaskRepository) TaskService {
	return &taskService{
		logger:     logger,
		repository: repository,
	}
}

func (s *taskService) CreateTask(ctx context.Context, owner *int64, text string, date time.Time) (*Task, error) {
	task := &Task{
		TelegramID: owner,
		Text:       strings.TrimSpace(text),
		Date:       date,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.repository.Create(ctx, task); err != nil {
		return nil, err
	}

	fields := []zap.Field{zap.Int64("taskID", task.ID)}
	if owner != nil {
		fields = append(fields, zap.Int64("telegramID", *owner))
	} else {
		fields = append(fields, zap.Bool("shared", true))
	}
	s.logger.Info("Task created", fields...)
	return task, nil
}

func (s *taskService) GetTasks(ctx context.Context, telegramID int64) ([]*Task, error) {
	return s.repository.ListByUser(ctx, telegramID)
}

func (s *taskService) GetTasksForDate(ctx context.Context, telegramID int64, date time.Time) ([]*Task, error) {
	return s.repository.ListByUserAndDate(ctx, telegramID, date)
}

func (s *taskService) UpdateTask(ctx context.Context, id int64, patch TaskPatch) (*Task, error) {
	task, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Text != nil {
		task.Text = strings.TrimSpace(*patch.Text)
	}
	if patch.Date != nil {
		task.Date = *patch.Date
	}
	if patch.IsDone != nil {
		task.IsDone = *patch.IsDone
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.repository.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) ToggleDone(ctx context.Context, id int64) (*Task, error) {
	task, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	task.IsDone = !task.IsDone
	if err := s.repository.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Task deleted", zap.Int64("taskID", id))
	return nil
}
