package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/terraincognita07/ovira/internal/logger"
	embeddedmigrations "github.com/terraincognita07/ovira/migrations"
	"gorm.io/gorm"
)

func OpenSQLite(dbPath string, log *logger.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: newGormLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	applied, err := applyEmbeddedMigrations(database, embeddedmigrations.Files)
	if err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}
	if applied > 0 && log != nil {
		log.Info("sqlite migrations applied", "count", applied, "path", dbPath)
	}

	return database, nil
}
