package models

import "time"

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Rank orders risk levels so callers can compare severities; unknown levels rank below low.
func (level RiskLevel) Rank() int {
	switch level {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return 0
	}
}

type HealthRisk struct {
	Level       RiskLevel `json:"level"`
	Flags       []string  `json:"flags"`
	Explanation string    `json:"explanation"`
	Disclaimer  string    `json:"disclaimer"`
}

type CyclePrediction struct {
	CurrentDay int       `json:"current_day"`
	DaysUntil  int       `json:"days_until"`
	NextPeriod time.Time `json:"next_period"`
}
