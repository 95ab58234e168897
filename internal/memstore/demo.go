package memstore

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/terraincognita07/ovira/internal/models"
)

const (
	DemoUserID  = "demo-user"
	DemoDays    = 14
	DemoSeedKey = 20240214
)

var demoMoods = []models.Mood{
	models.MoodHappy,
	models.MoodCalm,
	models.MoodAnxious,
	models.MoodIrritable,
	models.MoodSad,
	models.MoodEnergetic,
}

var demoFlows = []models.FlowLevel{models.FlowNone, models.FlowLight, models.FlowMedium, models.FlowHeavy}

// DemoLogs builds two weeks of plausible logs ending at today. The first five days of the
// simulated cycle carry flow and higher pain. The same seed always yields the same logs.
func DemoLogs(userID string, today time.Time, seed uint64) []models.SymptomLog {
	random := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	year, month, dayOfMonth := today.Date()
	anchor := time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)

	logs := make([]models.SymptomLog, 0, DemoDays)
	for offset := 0; offset < DemoDays; offset++ {
		cycleDay := (DemoDays - offset) % models.DefaultCycleLength
		onPeriod := cycleDay >= 1 && cycleDay <= 5

		entry := models.SymptomLog{
			UserID:      userID,
			Date:        anchor.AddDate(0, 0, -offset),
			FlowLevel:   models.FlowNone,
			PainScale:   random.IntN(3),
			Mood:        demoMoods[random.IntN(len(demoMoods))],
			EnergyLevel: random.IntN(4) + 5,
			SleepHours:  float64(random.IntN(3) + 6),
		}
		if onPeriod {
			entry.FlowLevel = demoFlows[min(cycleDay, len(demoFlows)-1)]
			entry.PainScale = random.IntN(5) + 3
		}
		if offset == 0 {
			entry.Notes = "Feeling good today!"
		}
		logs = append(logs, entry)
	}
	return logs
}

type LogWriter interface {
	CreateLog(ctx context.Context, entry *models.SymptomLog) error
}

// Seed writes the demo logs through any log store and returns how many were created.
func Seed(ctx context.Context, writer LogWriter, userID string, today time.Time, seed uint64) (int, error) {
	logs := DemoLogs(userID, today, seed)
	for index := range logs {
		if err := writer.CreateLog(ctx, &logs[index]); err != nil {
			return index, fmt.Errorf("seed demo log %d: %w", index, err)
		}
	}
	return len(logs), nil
}
