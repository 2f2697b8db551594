package progress

import "context"

// UserRepository defines the persistence boundary for user records.
type UserRepository interface {
	// GetUser returns the user or a common.NotFoundError.
	GetUser(ctx context.Context, telegramID int64) (*User, error)

	// GetUserForUpdate loads the user with a row-level write lock. Only
	// meaningful inside WithTransaction; concurrent sessions for the same
	// user serialize on this lock.
	GetUserForUpdate(ctx context.Context, telegramID int64) (*User, error)

	// CreateUser inserts a new user record.
	CreateUser(ctx context.Context, user *User) error

	// UpdateUser persists all mutable fields of an existing record.
	UpdateUser(ctx context.Context, user *User) error

	// ListAll returns every user ordered by telegram_id ascending. The
	// ordering is the enumeration order the leaderboard's stable sort
	// breaks ties with.
	ListAll(ctx context.Context) ([]*User, error)

	// WithTransaction executes fn within a database transaction. Any error
	// rolls the whole transaction back.
	WithTransaction(fn func(UserRepository) error) error
}
