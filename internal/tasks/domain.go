package tasks

import (
	"strings"
	"time"
)

// MaxTextLength caps a single task's text.
const MaxTextLength = 500

// Task is one to-do item. A nil TelegramID marks a shared task that every
// user sees alongside their own.
type Task struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TelegramID *int64    `json:"telegram_id,omitempty" gorm:"index:idx_tasks_telegram_id"`
	Text       string    `json:"text" gorm:"type:varchar(500);not null"`
	Date       time.Time `json:"date" gorm:"type:date;not null"`
	IsDone     bool      `json:"is_done" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// Validate checks the task's own field constraints.
func (t *Task) Validate() error {
	text := strings.TrimSpace(t.Text)
	if text == "" {
		return NewTaskValidationError("text", "task text must not be empty")
	}
	if len(text) > MaxTextLength {
		return NewTaskValidationError("text", "task text too long")
	}
	if t.Date.IsZero() {
		return NewTaskValidationError("date", "task date is required")
	}
	return nil
}

// TaskPatch is a partial update; nil fields are left untouched.
type TaskPatch struct {
	Text   *string    `json:"text,omitempty"`
	Date   *time.Time `json:"date,omitempty"`
	IsDone *bool      `json:"is_done,omitempty"`
}
