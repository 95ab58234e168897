package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/ovira/internal/models"
)

type SymptomLogInput struct {
	Date        time.Time
	FlowLevel   models.FlowLevel
	PainScale   int
	Mood        models.Mood
	EnergyLevel int
	SleepHours  float64
	Notes       string
	PeriodStart bool
}

// NormalizeLogInput lowercases enum values, trims notes and fills the defaults the logging
// form starts with.
func NormalizeLogInput(input SymptomLogInput) SymptomLogInput {
	input.FlowLevel = models.FlowLevel(strings.ToLower(strings.TrimSpace(string(input.FlowLevel))))
	if input.FlowLevel == "" {
		input.FlowLevel = models.FlowNone
	}
	input.Mood = models.Mood(strings.ToLower(strings.TrimSpace(string(input.Mood))))
	if input.Mood == "" {
		input.Mood = models.MoodNeutral
	}
	input.Notes = strings.TrimSpace(input.Notes)
	return input
}

func ValidateLogInput(input SymptomLogInput) error {
	switch {
	case input.Date.IsZero():
		return ErrInvalidLogInput
	case !input.FlowLevel.IsValid():
		return ErrInvalidLogInput
	case !input.Mood.IsValid():
		return ErrInvalidLogInput
	case input.PainScale < models.MinPainScale || input.PainScale > models.MaxPainScale:
		return ErrInvalidLogInput
	case input.EnergyLevel < models.MinEnergyLevel || input.EnergyLevel > models.MaxEnergyLevel:
		return ErrInvalidLogInput
	case input.SleepHours < 0 || input.SleepHours > models.MaxSleepHours:
		return ErrInvalidLogInput
	case utf8.RuneCountInString(input.Notes) > models.MaxNotesLength:
		return ErrInvalidLogInput
	}
	return nil
}
