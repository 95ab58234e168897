package services

import (
	"fmt"

	"github.com/terraincognita07/ovira/internal/models"
)

const (
	MedicalDisclaimer     = "⚕️ This is not a medical diagnosis. The analysis is based on general health patterns and should not replace professional medical advice. Always consult a qualified healthcare provider for medical concerns."
	EmptyWindowDisclaimer = "This is not a medical diagnosis. Please consult a healthcare provider for medical advice."

	ExplanationNotEnoughData = "Not enough data to analyze. Keep logging your symptoms for personalized insights."
	ExplanationHealthy       = "Your recent logs show a healthy pattern. Keep up the great work with tracking your health!"
	ExplanationMinor         = "Minor patterns detected. Continue logging to help identify trends."

	explanationConcernFormat    = "We've identified %d potential concern(s) that may need attention. While these are not diagnoses, we recommend discussing these patterns with your healthcare provider soon."
	explanationMonitoringFormat = "We've noticed %d pattern(s) worth monitoring. These aren't necessarily concerning but tracking them over time can provide valuable insights for you and your doctor."

	FlagAnemiaIndicator   = "Possible anemia indicator: Heavy bleeding combined with low energy levels"
	FlagHighPain          = "High pain levels detected: Average pain score is above 7/10"
	FlagSleepDeprivation  = "Sleep deprivation: Average sleep is below recommended levels"
	FlagMoodPattern       = "Mood patterns: More than half of logged days show sad or anxious mood"
	FlagProlongedBleeding = "Prolonged heavy bleeding: Consider discussing with a healthcare provider"
)

const (
	anemiaHeavyFlowPercent   = 30.0
	anemiaEnergyCeiling      = 4.0
	highPainFloor            = 7.0
	sleepDeprivationCeiling  = 5.0
	lowMoodShareThreshold    = 0.5
	prolongedBleedingPercent = 50.0
)

type symptomWindowStats struct {
	Total               int
	AveragePain         float64
	AverageEnergy       float64
	AverageSleep        float64
	HeavyFlowPercentage float64
	Moods               moodHistogram
}

// AnalyzeHealthRisks runs the heuristic rules over the whole log window in a fixed order.
func AnalyzeHealthRisks(logs []models.SymptomLog) models.HealthRisk {
	if len(logs) == 0 {
		return models.HealthRisk{
			Level:       models.RiskLow,
			Flags:       []string{},
			Explanation: ExplanationNotEnoughData,
			Disclaimer:  EmptyWindowDisclaimer,
		}
	}

	stats := summarizeSymptomWindow(logs)
	flags := make([]string, 0, 5)
	level := models.RiskLow

	if stats.HeavyFlowPercentage > anemiaHeavyFlowPercent && stats.AverageEnergy < anemiaEnergyCeiling {
		flags = append(flags, FlagAnemiaIndicator)
		level = raiseRiskLevel(level, models.RiskMedium)
	}

	if stats.AveragePain >= highPainFloor {
		flags = append(flags, FlagHighPain)
		level = raiseRiskLevel(level, models.RiskMedium)
	}

	if stats.AverageSleep < sleepDeprivationCeiling {
		flags = append(flags, FlagSleepDeprivation)
		level = raiseRiskLevel(level, models.RiskMedium)
	}

	lowMoodDays := stats.Moods.Count(models.MoodSad) + stats.Moods.Count(models.MoodAnxious)
	if float64(lowMoodDays)/float64(stats.Total) > lowMoodShareThreshold {
		flags = append(flags, FlagMoodPattern)
		level = raiseRiskLevel(level, models.RiskMedium)
	}

	if stats.HeavyFlowPercentage > prolongedBleedingPercent {
		flags = append(flags, FlagProlongedBleeding)
		level = models.RiskHigh
	}

	return models.HealthRisk{
		Level:       level,
		Flags:       flags,
		Explanation: riskExplanation(level, len(flags)),
		Disclaimer:  MedicalDisclaimer,
	}
}

func summarizeSymptomWindow(logs []models.SymptomLog) symptomWindowStats {
	stats := symptomWindowStats{Total: len(logs), Moods: newMoodHistogram()}
	if len(logs) == 0 {
		return stats
	}

	var painTotal, energyTotal int
	var sleepTotal float64
	heavyDays := 0
	for _, entry := range logs {
		painTotal += entry.PainScale
		energyTotal += entry.EnergyLevel
		sleepTotal += entry.SleepHours
		if entry.FlowLevel == models.FlowHeavy {
			heavyDays++
		}
		stats.Moods.Add(entry.Mood)
	}

	count := float64(len(logs))
	stats.AveragePain = float64(painTotal) / count
	stats.AverageEnergy = float64(energyTotal) / count
	stats.AverageSleep = sleepTotal / count
	stats.HeavyFlowPercentage = float64(heavyDays) / count * 100
	return stats
}

// raiseRiskLevel never lowers the current level.
func raiseRiskLevel(current models.RiskLevel, floor models.RiskLevel) models.RiskLevel {
	if floor.Rank() > current.Rank() {
		return floor
	}
	return current
}

func riskExplanation(level models.RiskLevel, flagCount int) string {
	switch {
	case flagCount == 0:
		return ExplanationHealthy
	case level == models.RiskHigh:
		return fmt.Sprintf(explanationConcernFormat, flagCount)
	case level == models.RiskMedium:
		return fmt.Sprintf(explanationMonitoringFormat, flagCount)
	default:
		return ExplanationMinor
	}
}
