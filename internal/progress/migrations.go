package progress

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations performs auto-migration for the users table
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("failed to auto-migrate users table: %w", err)
	}

	// Create database indexes for performance
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_exp ON users(exp DESC)",
		"CREATE INDEX IF NOT EXISTS idx_users_last_learning_date ON users(last_learning_date)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create user index: %w", err)
		}
	}

	return nil
}
