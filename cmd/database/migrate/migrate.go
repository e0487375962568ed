package migration

import (
	"Lost-Found-Registry/entities"
	"fmt"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.Item{}); err != nil {
		return fmt.Errorf("migrating item table: %w", err)
	}
	if err := db.AutoMigrate(&entities.Admin{}); err != nil {
		return fmt.Errorf("migrating admin table: %w", err)
	}
	return nil
}
