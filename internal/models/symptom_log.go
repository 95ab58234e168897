package models

import "time"

type FlowLevel string

const (
	FlowNone   FlowLevel = "none"
	FlowLight  FlowLevel = "light"
	FlowMedium FlowLevel = "medium"
	FlowHeavy  FlowLevel = "heavy"
)

func (flow FlowLevel) IsValid() bool {
	switch flow {
	case FlowNone, FlowLight, FlowMedium, FlowHeavy:
		return true
	default:
		return false
	}
}

type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodCalm      Mood = "calm"
	MoodNeutral   Mood = "neutral"
	MoodAnxious   Mood = "anxious"
	MoodSad       Mood = "sad"
	MoodIrritable Mood = "irritable"
	MoodEnergetic Mood = "energetic"
)

func KnownMoods() []Mood {
	return []Mood{MoodHappy, MoodCalm, MoodNeutral, MoodAnxious, MoodSad, MoodIrritable, MoodEnergetic}
}

func (mood Mood) IsValid() bool {
	for _, known := range KnownMoods() {
		if mood == known {
			return true
		}
	}
	return false
}

const (
	MinPainScale   = 0
	MaxPainScale   = 10
	MinEnergyLevel = 1
	MaxEnergyLevel = 10
	MaxSleepHours  = 24
	MaxNotesLength = 2000
)

type SymptomLog struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string    `gorm:"not null;index:idx_symptom_logs_user_date,priority:1" json:"user_id"`
	Date        time.Time `gorm:"type:date;not null;index:idx_symptom_logs_user_date,priority:2" json:"date"`
	FlowLevel   FlowLevel `gorm:"not null;default:none" json:"flow_level"`
	PainScale   int       `gorm:"not null;default:0" json:"pain_scale"`
	Mood        Mood      `gorm:"not null;default:neutral" json:"mood"`
	EnergyLevel int       `gorm:"not null;default:5" json:"energy_level"`
	SleepHours  float64   `gorm:"not null;default:0" json:"sleep_hours"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
