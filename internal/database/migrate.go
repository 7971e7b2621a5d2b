package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/OpenProcure/procure/internal/uploads"
	"github.com/OpenProcure/procure/internal/workflow/model"
)

// Migrate creates or updates the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database is nil")
	}

	if err := db.AutoMigrate(
		&model.WorkflowItem{},
		&uploads.Attachment{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
