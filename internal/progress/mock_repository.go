package progress

import (
	"context"
	"sort"
	"sync"

	"lingobot-api/internal/common"
)

// MockUserRepository provides an in-memory implementation for testing
type MockUserRepository struct {
	mu          sync.Mutex
	users       map[int64]*User
	createError error
	getError    error
	updateError error
	listError   error
	txError     error
}

// NewMockUserRepository creates a new mock repository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[int64]*User),
	}
}

func (m *MockUserRepository) GetUser(ctx context.Context, telegramID int64) (*User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, exists := m.users[telegramID]; exists {
		copied := *user
		return &copied, nil
	}
	return nil, common.NotFoundError{Resource: "User", ID: common.UserID(telegramID).String()}
}

func (m *MockUserRepository) GetUserForUpdate(ctx context.Context, telegramID int64) (*User, error) {
	return m.GetUser(ctx, telegramID)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *User) error {
	if m.createError != nil {
		return m.createError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *user
	m.users[user.TelegramID] = &copied
	return nil
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *User) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.TelegramID]; !exists {
		return common.NotFoundError{Resource: "User", ID: common.UserID(user.TelegramID).String()}
	}
	copied := *user
	m.users[user.TelegramID] = &copied
	return nil
}

func (m *MockUserRepository) ListAll(ctx context.Context) ([]*User, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int64, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]*User, 0, len(ids))
	for _, id := range ids {
		copied := *m.users[id]
		users = append(users, &copied)
	}
	return users, nil
}

func (m *MockUserRepository) WithTransaction(fn func(UserRepository) error) error {
	if m.txError != nil {
		return m.txError
	}
	// The mock applies fn against a staging copy and commits only on success,
	// mirroring the all-or-nothing behavior of a real transaction.
	m.mu.Lock()
	staging := &MockUserRepository{
		users:       make(map[int64]*User, len(m.users)),
		createError: m.createError,
		getError:    m.getError,
		updateError: m.updateError,
		listError:   m.listError,
	}
	for id, user := range m.users {
		copied := *user
		staging.users[id] = &copied
	}
	m.mu.Unlock()

	if err := fn(staging); err != nil {
		return err
	}

	m.mu.Lock()
	m.users = staging.users
	m.mu.Unlock()
	return nil
}

// SetCreateError injects an error for CreateUser calls
func (m *MockUserRepository) SetCreateError(err error) { m.createError = err }

// SetGetError injects an error for GetUser calls
func (m *MockUserRepository) SetGetError(err error) { m.getError = err }

// SetUpdateError injects an error for UpdateUser calls
func (m *MockUserRepository) SetUpdateError(err error) { m.updateError = err }

// SetListError injects an error for ListAll calls
func (m *MockUserRepository) SetListError(err error) { m.listError = err }

// SetTransactionError injects an error for WithTransaction calls
func (m *MockUserRepository) SetTransactionError(err error) { m.txError = err }
