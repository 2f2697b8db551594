package progress

import (
	"context"
	"errors"

	"lingobot-api/internal/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormUserRepository implements the UserRepository interface using GORM
type gormUserRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormUserRepository creates a new GORM-based user repository
func NewGormUserRepository(db *gorm.DB, logger *zap.Logger) UserRepository {
	return &gormUserRepository{
		db:     db,
		logger: logger,
	}
}

// GetUser retrieves a user by telegram id
func (r *gormUserRepository) GetUser(ctx context.Context, telegramID int64) (*User, error) {
	r.logger.Debug("Getting user", zap.Int64("telegramID", telegramID))

	var user User
	err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundError{Resource: "User", ID: common.UserID(telegramID).String()}
		}
		return nil, WrapRepositoryError(err, "get user")
	}

	return &user, nil
}

// GetUserForUpdate retrieves a user holding a row-level write lock.
// Concurrent learn-words calls for the same user serialize here.
func (r *gormUserRepository) GetUserForUpdate(ctx context.Context, telegramID int64) (*User, error) {
	r.logger.Debug("Getting user for update", zap.Int64("telegramID", telegramID))

	var user User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("telegram_id = ?", telegramID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundError{Resource: "User", ID: common.UserID(telegramID).String()}
		}
		return nil, WrapRepositoryError(err, "get user for update")
	}

	return &user, nil
}

// CreateUser inserts a new user record
func (r *gormUserRepository) CreateUser(ctx context.Context, user *User) error {
	r.logger.Debug("Creating user", zap.Int64("telegramID", user.TelegramID))

	if user.LearnedWords == nil {
		user.LearnedWords = Int64List{}
	}
	if user.SkippedWords == nil {
		user.SkippedWords = Int64List{}
	}
	if user.TimeLine == "" {
		user.TimeLine = DefaultTimeLine
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return WrapRepositoryError(err, "create user")
	}

	r.logger.Info("User created", zap.Int64("telegramID", user.TelegramID))
	return nil
}

// UpdateUser persists all mutable fields of an existing user record
func (r *gormUserRepository) UpdateUser(ctx context.Context, user *User) error {
	r.logger.Debug("Updating user", zap.Int64("telegramID", user.TelegramID))

	// Save writes every column, including zero values and cleared optionals.
	result := r.db.WithContext(ctx).Save(user)
	if result.Error != nil {
		return WrapRepositoryError(result.Error, "update user")
	}

	if result.RowsAffected == 0 {
		return common.NotFoundError{Resource: "User", ID: common.UserID(user.TelegramID).String()}
	}

	return nil
}

// ListAll returns every user ordered by telegram_id ascending
func (r *gormUserRepository) ListAll(ctx context.Context) ([]*User, error) {
	var users []*User
	err := r.db.WithContext(ctx).Order("telegram_id ASC").Find(&users).Error
	if err != nil {
		return nil, WrapRepositoryError(err, "list users")
	}

	r.logger.Debug("Listed users", zap.Int("count", len(users)))
	return users, nil
}

// WithTransaction executes a function within a database transaction
func (r *gormUserRepository) WithTransaction(fn func(UserRepository) error) error {
	r.logger.Debug("Starting transaction")

	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &gormUserRepository{
			db:     tx,
			logger: r.logger,
		}

		err := fn(txRepo)
		if err != nil {
			r.logger.Debug("Transaction failed, rolling back", zap.Error(err))
			return err
		}

		r.logger.Debug("Transaction completed successfully")
		return nil
	})
}
