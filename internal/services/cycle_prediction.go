package services

import (
	"time"

	"github.com/terraincognita07/ovira/internal/models"
)

// PredictNextPeriod returns nil when no period start is known. averageCycleLength must be >= 1;
// callers normalize it with NormalizeCycleLength first.
//
// currentDay uses floor modulo, so a future-dated start still yields a day in [1, length].
func PredictNextPeriod(lastPeriodStart *time.Time, averageCycleLength int, today time.Time) *models.CyclePrediction {
	if lastPeriodStart == nil {
		return nil
	}

	location := today.Location()
	start := CalendarDate(*lastPeriodStart, location)
	day := CalendarDate(today, location)

	daysSince := CalendarDaysBetween(start, day)
	cyclesSince := floorDiv(daysSince, averageCycleLength)
	nextPeriod := start.AddDate(0, 0, (cyclesSince+1)*averageCycleLength)

	daysUntil := CalendarDaysBetween(day, nextPeriod)
	if daysUntil < 0 {
		daysUntil = 0
	}

	return &models.CyclePrediction{
		CurrentDay: floorMod(daysSince, averageCycleLength) + 1,
		DaysUntil:  daysUntil,
		NextPeriod: nextPeriod,
	}
}

func NormalizeCycleLength(length int) int {
	if length < 1 {
		return models.DefaultCycleLength
	}
	return length
}

func floorDiv(value int, divisor int) int {
	quotient := value / divisor
	if value%divisor != 0 && (value < 0) != (divisor < 0) {
		quotient--
	}
	return quotient
}

func floorMod(value int, divisor int) int {
	return value - floorDiv(value, divisor)*divisor
}
