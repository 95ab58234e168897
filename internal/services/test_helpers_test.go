package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/ovira/internal/models"
)

func mustParseServiceDay(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return parsed
}

type logSpec struct {
	flow   models.FlowLevel
	pain   int
	mood   models.Mood
	energy int
	sleep  float64
}

func buildLogs(day time.Time, specs ...logSpec) []models.SymptomLog {
	logs := make([]models.SymptomLog, 0, len(specs))
	for index, spec := range specs {
		logs = append(logs, models.SymptomLog{
			UserID:      "user-1",
			Date:        day.AddDate(0, 0, -index),
			FlowLevel:   spec.flow,
			PainScale:   spec.pain,
			Mood:        spec.mood,
			EnergyLevel: spec.energy,
			SleepHours:  spec.sleep,
		})
	}
	return logs
}

func repeatSpec(spec logSpec, count int) []logSpec {
	specs := make([]logSpec, count)
	for index := range specs {
		specs[index] = spec
	}
	return specs
}

var calmDay = logSpec{flow: models.FlowNone, pain: 2, mood: models.MoodCalm, energy: 7, sleep: 8}
