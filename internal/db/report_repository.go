package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/terraincognita07/ovira/internal/models"
	"gorm.io/gorm"
)

type ReportRepository struct {
	database *gorm.DB
}

func NewReportRepository(database *gorm.DB) *ReportRepository {
	return &ReportRepository{database: database}
}

func (repo *ReportRepository) CreateReport(ctx context.Context, report *models.HealthReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	return repo.database.WithContext(ctx).Create(report).Error
}

func (repo *ReportRepository) ListReports(ctx context.Context, userID string) ([]models.HealthReport, error) {
	reports := make([]models.HealthReport, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("generated_at DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (repo *ReportRepository) FindReport(ctx context.Context, userID string, id string) (models.HealthReport, error) {
	report := models.HealthReport{}
	if err := repo.database.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&report).Error; err != nil {
		return models.HealthReport{}, translateError(err)
	}
	return report, nil
}

func (repo *ReportRepository) DeleteAllReports(ctx context.Context, userID string) error {
	return repo.database.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.HealthReport{}).Error
}
