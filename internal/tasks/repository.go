package tasks

import (
	"context"
	"time"
)

// TaskRepository defines the persistence interface for personal tasks.
type TaskRepository interface {
	// Create inserts a new task and fills in its id.
	Create(ctx context.Context, task *Task) error

	// GetByID fetches one task.
	GetByID(ctx context.Context, id int64) (*Task, error)

	// ListByUser returns a user's tasks, oldest date first.
	ListByUser(ctx context.Context, telegramID int64) ([]*Task, error)

	// ListByUserAndDate returns a user's tasks for one calendar date.
	ListByUserAndDate(ctx context.Context, telegramID int64, date time.Time) ([]*Task, error)

	// Update persists a modified task.
	Update(ctx context.Context, task *Task) error

	// Delete removes a task.
	Delete(ctx context.Context, id int64) error
}
