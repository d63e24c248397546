package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/smart-kitchen/backend/internal/logger"
	"github.com/pageza/smart-kitchen/backend/internal/models"
)

// RunMigrations creates or updates the audit schema.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.GenerationRecord{}); err != nil {
		return fmt.Errorf("failed to migrate generation records: %w", err)
	}
	logger.L().Info("database schema up to date", zap.String("dialect", db.Dialector.Name()))
	return nil
}
