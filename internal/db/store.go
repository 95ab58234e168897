package db

import (
	"fmt"

	"github.com/terraincognita07/ovira/internal/store"
	"gorm.io/gorm"
)

// Store bundles the GORM repositories behind store.Store.
type Store struct {
	*SymptomLogRepository
	*ReportRepository
	*ProfileRepository

	database *gorm.DB
}

var _ store.Store = (*Store)(nil)

func NewStore(database *gorm.DB) *Store {
	return &Store{
		SymptomLogRepository: NewSymptomLogRepository(database),
		ReportRepository:     NewReportRepository(database),
		ProfileRepository:    NewProfileRepository(database),
		database:             database,
	}
}

func (s *Store) Close() error {
	sqlDB, err := s.database.DB()
	if err != nil {
		return fmt.Errorf("resolve sql db: %w", err)
	}
	return sqlDB.Close()
}
