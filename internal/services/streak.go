package services

import (
	"time"

	"github.com/terraincognita07/ovira/internal/models"
)

const StreakWindowDays = 60

// CalculateStreak counts consecutive logged calendar days ending at today.
// No entry for today means no streak.
func CalculateStreak(logs []models.SymptomLog, today time.Time) int {
	if len(logs) == 0 {
		return 0
	}

	loggedDays := make(map[string]struct{}, len(logs))
	for _, entry := range logs {
		loggedDays[entry.Date.Format(dayLayout)] = struct{}{}
	}

	start := CalendarDate(today, today.Location())
	streak := 0
	for offset := 0; offset < StreakWindowDays; offset++ {
		key := start.AddDate(0, 0, -offset).Format(dayLayout)
		if _, ok := loggedDays[key]; !ok {
			break
		}
		streak++
	}
	return streak
}
