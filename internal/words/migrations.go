package words

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations performs auto-migration for the word catalog table
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&Word{}); err != nil {
		return fmt.Errorf("failed to auto-migrate eng_words table: %w", err)
	}
	return nil
}
