package db

import (
	"fmt"

	"github.com/zulandar/threadline/internal/models"
	"gorm.io/gorm"
)

// AllModels returns every GORM model Threadline stores.
func AllModels() []interface{} {
	return []interface{}{
		&models.Report{},
		&models.ReportAction{},
		&models.PersonalDetail{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
