package tasks

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations performs auto-migration for the tasks table
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&Task{}); err != nil {
		return fmt.Errorf("failed to auto-migrate tasks table: %w", err)
	}

	index := "CREATE INDEX IF NOT EXISTS idx_tasks_telegram_id_date ON tasks(telegram_id, date)"
	if err := db.Exec(index).Error; err != nil {
		return fmt.Errorf("failed to create task index: %w", err)
	}
	return nil
}
