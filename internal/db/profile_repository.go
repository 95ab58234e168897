package db

import (
	"context"
	"time"

	"github.com/terraincognita07/ovira/internal/models"
	"github.com/terraincognita07/ovira/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) FindProfile(ctx context.Context, userID string) (models.Profile, error) {
	profile := models.Profile{}
	if err := repo.database.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return models.Profile{}, translateError(err)
	}
	return profile, nil
}

// SaveProfile inserts the profile or overwrites every editable column of the existing row.
func (repo *ProfileRepository) SaveProfile(ctx context.Context, profile *models.Profile) error {
	profile.UpdatedAt = time.Now().UTC()
	return repo.database.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"display_name",
				"age_range",
				"known_conditions",
				"last_period_start",
				"average_cycle_length",
				"updated_at",
			}),
		}).
		Create(profile).Error
}

func (repo *ProfileRepository) DeleteProfile(ctx context.Context, userID string) error {
	result := repo.database.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Profile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
