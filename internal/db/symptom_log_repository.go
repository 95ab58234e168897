package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/ovira/internal/models"
	"github.com/terraincognita07/ovira/internal/store"
	"gorm.io/gorm"
)

type SymptomLogRepository struct {
	database *gorm.DB
}

func NewSymptomLogRepository(database *gorm.DB) *SymptomLogRepository {
	return &SymptomLogRepository{database: database}
}

func (repo *SymptomLogRepository) CreateLog(ctx context.Context, entry *models.SymptomLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return repo.database.WithContext(ctx).Create(entry).Error
}

func (repo *SymptomLogRepository) UpdateLog(ctx context.Context, entry *models.SymptomLog) error {
	result := repo.database.WithContext(ctx).
		Model(&models.SymptomLog{}).
		Where("id = ? AND user_id = ?", entry.ID, entry.UserID).
		Updates(map[string]any{
			"date":         entry.Date,
			"flow_level":   entry.FlowLevel,
			"pain_scale":   entry.PainScale,
			"mood":         entry.Mood,
			"energy_level": entry.EnergyLevel,
			"sleep_hours":  entry.SleepHours,
			"notes":        entry.Notes,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (repo *SymptomLogRepository) FindLog(ctx context.Context, userID string, id string) (models.SymptomLog, error) {
	entry := models.SymptomLog{}
	if err := repo.database.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		return models.SymptomLog{}, translateError(err)
	}
	return entry, nil
}

func (repo *SymptomLogRepository) DeleteLog(ctx context.Context, userID string, id string) error {
	result := repo.database.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.SymptomLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (repo *SymptomLogRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.SymptomLog, error) {
	logs := make([]models.SymptomLog, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *SymptomLogRepository) ListByDateRange(ctx context.Context, userID string, from time.Time, to time.Time) ([]models.SymptomLog, error) {
	logs := make([]models.SymptomLog, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date DESC, created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *SymptomLogRepository) DeleteAllLogs(ctx context.Context, userID string) error {
	return repo.database.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.SymptomLog{}).Error
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}
