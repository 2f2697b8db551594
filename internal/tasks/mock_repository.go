package tasks

import (
	"context"
	"sort"
	"sync"
	"time"

	"lingobot-api/internal/common"
)

// MockTaskRepository provides an in-memory implementation for testing
type MockTaskRepository struct {
	mu          sync.Mutex
	tasks       map[int64]*Task
	nextID      int64
	createError error
	getError    error
	updateError error
	deleteError error
}

// NewMockTaskRepository creates a new mock repository
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		tasks:  make(map[int64]*Task),
		nextID: 1,
	}
}

func (m *MockTaskRepository) Create(ctx context.Context, task *Task) error {
	if m.createError != nil {
		return m.createError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if task.ID == 0 {
		task.ID = m.nextID
		m.nextID++
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id int64) (*Task, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if task, exists := m.tasks[id]; exists {
		copied := *task
		return &copied, nil
	}
	return nil, common.NotFoundError{Resource: "Task", ID: common.TaskID(id).String()}
}

func (m *MockTaskRepository) ListByUser(ctx context.Context, telegramID int64) ([]*Task, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]*Task, 0)
	for _, task := range m.tasks {
		if task.TelegramID == nil || *task.TelegramID == telegramID {
			copied := *task
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (m *MockTaskRepository) ListByUserAndDate(ctx context.Context, telegramID int64, date time.Time) ([]*Task, error) {
	all, err := m.ListByUser(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	list := make([]*Task, 0)
	for _, task := range all {
		ty, tm, td := task.Date.Date()
		dy, dm, dd := date.Date()
		if ty == dy && tm == dm && td == dd {
			list = append(list, task)
		}
	}
	return list, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, task *Task) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.tasks[task.ID]; !exists {
		return common.NotFoundError{Resource: "Task", ID: common.TaskID(task.ID).String()}
	}
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.tasks[id]; !exists {
		return common.NotFoundError{Resource: "Task", ID: common.TaskID(id).String()}
	}
	delete(m.tasks, id)
	return nil
}

// SetCreateError injects an error for Create calls
func (m *MockTaskRepository) SetCreateError(err error) { m.createError = err }

// SetGetError injects an error for read calls
func (m *MockTaskRepository) SetGetError(err error) { m.getError = err }

// SetUpdateError injects an error for Update calls
func (m *MockTaskRepository) SetUpdateError(err error) { m.updateError = err }

// SetDeleteError injects an error for Delete calls
func (m *MockTaskRepository) SetDeleteError(err error) { m.deleteError = err }
