package db

import (
	"fmt"

	"github.com/terraincognita07/ovira/internal/logger"
	"github.com/terraincognita07/ovira/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenPostgres connects to dsn and lets GORM reconcile the schema from the models.
func OpenPostgres(dsn string, log *logger.Logger) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: newGormLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := database.AutoMigrate(
		&models.SymptomLog{},
		&models.HealthReport{},
		&models.Profile{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return database, nil
}
