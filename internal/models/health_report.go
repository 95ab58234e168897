package models

import (
	"time"

	"gorm.io/datatypes"
)

type ReportCycleData struct {
	AverageLength int `gorm:"not null;default:28" json:"average_length"`
	PeriodDays    int `gorm:"not null;default:0" json:"period_days"`
}

type ReportSymptoms struct {
	AveragePain   float64                     `gorm:"not null;default:0" json:"average_pain"`
	CommonMoods   datatypes.JSONSlice[string] `json:"common_moods"`
	AverageEnergy float64                     `gorm:"not null;default:0" json:"average_energy"`
	AverageSleep  float64                     `gorm:"not null;default:0" json:"average_sleep"`
}

type ReportRisks struct {
	Level RiskLevel                   `gorm:"not null;default:low" json:"level"`
	Flags datatypes.JSONSlice[string] `json:"flags"`
}

type HealthReport struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string          `gorm:"not null;index:idx_health_reports_user_generated,priority:1" json:"user_id"`
	GeneratedAt time.Time       `gorm:"not null;index:idx_health_reports_user_generated,priority:2" json:"generated_at"`
	StartDate   time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time       `gorm:"type:date;not null" json:"end_date"`
	CycleData   ReportCycleData `gorm:"embedded;embeddedPrefix:cycle_" json:"cycle_data"`
	Symptoms    ReportSymptoms  `gorm:"embedded;embeddedPrefix:symptoms_" json:"symptoms"`
	Risks       ReportRisks     `gorm:"embedded;embeddedPrefix:risk_" json:"risks"`
}
