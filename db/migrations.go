package db

import (
	"fmt"

	"dummyblog/models"

	"gorm.io/gorm"
)

// Migrate приводит схему архива чата к актуальному виду
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(&models.ChatMessage{}); err != nil {
		return fmt.Errorf("failed to migrate chat archive: %w", err)
	}
	return nil
}
