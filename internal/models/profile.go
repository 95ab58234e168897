package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DefaultCycleLength = 28
	MinCycleLength     = 15
	MaxCycleLength     = 90
)

type Profile struct {
	UserID             string                      `gorm:"primaryKey;type:varchar(64)" json:"user_id"`
	DisplayName        string                      `gorm:"not null;default:''" json:"display_name"`
	AgeRange           string                      `gorm:"not null;default:''" json:"age_range"`
	KnownConditions    datatypes.JSONSlice[string] `json:"known_conditions"`
	LastPeriodStart    *time.Time                  `gorm:"type:date" json:"last_period_start"`
	AverageCycleLength int                         `gorm:"not null;default:28" json:"average_cycle_length"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

func DefaultProfile(userID string) Profile {
	return Profile{
		UserID:             userID,
		KnownConditions:    datatypes.JSONSlice[string]{},
		AverageCycleLength: DefaultCycleLength,
	}
}
