package services

import (
	"math"
	"time"

	"github.com/terraincognita07/ovira/internal/models"
	"gorm.io/datatypes"
)

const commonMoodLimit = 3

type ReportInput struct {
	UserID             string
	Logs               []models.SymptomLog
	Risk               models.HealthRisk
	StartDate          time.Time
	EndDate            time.Time
	GeneratedAt        time.Time
	AverageCycleLength int
}

// AggregateReport assembles a report snapshot from a non-empty log window. It performs no I/O
// and reads no clock; the identifier is left for the store to assign.
func AggregateReport(input ReportInput) models.HealthReport {
	stats := summarizeSymptomWindow(input.Logs)

	periodDays := 0
	for _, entry := range input.Logs {
		if entry.FlowLevel != models.FlowNone {
			periodDays++
		}
	}

	averageLength := input.AverageCycleLength
	if averageLength < 1 {
		averageLength = models.DefaultCycleLength
	}

	topMoods := stats.Moods.Top(commonMoodLimit)
	commonMoods := make(datatypes.JSONSlice[string], 0, len(topMoods))
	for _, mood := range topMoods {
		commonMoods = append(commonMoods, string(mood))
	}

	flags := make(datatypes.JSONSlice[string], len(input.Risk.Flags))
	copy(flags, input.Risk.Flags)

	return models.HealthReport{
		UserID:      input.UserID,
		GeneratedAt: input.GeneratedAt,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CycleData: models.ReportCycleData{
			AverageLength: averageLength,
			PeriodDays:    periodDays,
		},
		Symptoms: models.ReportSymptoms{
			AveragePain:   roundToTenth(stats.AveragePain),
			CommonMoods:   commonMoods,
			AverageEnergy: roundToTenth(stats.AverageEnergy),
			AverageSleep:  roundToTenth(stats.AverageSleep),
		},
		Risks: models.ReportRisks{
			Level: input.Risk.Level,
			Flags: flags,
		},
	}
}

// roundToTenth rounds half away from zero.
func roundToTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
