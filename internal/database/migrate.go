package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/pageza/pantry-finder/backend/internal/model"
)

// Migrate creates or updates the tables owned by the application.
func Migrate(db *gorm.DB) error {
	log.Printf("Running GORM auto-migration on %s", db.Dialector.Name())
	if err := db.AutoMigrate(&model.SearchRecord{}); err != nil {
		return fmt.Errorf("failed to migrate search records: %w", err)
	}
	return nil
}
