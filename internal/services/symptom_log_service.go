package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/ovira/internal/models"
	"github.com/terraincognita07/ovira/internal/store"
)

const DefaultLogWindowSize = 30

type SymptomLogRepository interface {
	CreateLog(ctx context.Context, entry *models.SymptomLog) error
	UpdateLog(ctx context.Context, entry *models.SymptomLog) error
	FindLog(ctx context.Context, userID string, id string) (models.SymptomLog, error)
	DeleteLog(ctx context.Context, userID string, id string) error
	ListRecent(ctx context.Context, userID string, limit int) ([]models.SymptomLog, error)
	ListByDateRange(ctx context.Context, userID string, from time.Time, to time.Time) ([]models.SymptomLog, error)
}

type LogProfileRepository interface {
	FindProfile(ctx context.Context, userID string) (models.Profile, error)
	SaveProfile(ctx context.Context, profile *models.Profile) error
}

type SymptomLogService struct {
	logs     SymptomLogRepository
	profiles LogProfileRepository
	location *time.Location
}

func NewSymptomLogService(logs SymptomLogRepository, profiles LogProfileRepository, location *time.Location) *SymptomLogService {
	if location == nil {
		location = time.UTC
	}
	return &SymptomLogService{
		logs:     logs,
		profiles: profiles,
		location: location,
	}
}

// Create stores the log. A failed period start sync still returns the stored entry together
// with an error wrapping ErrPeriodSyncFailed.
func (service *SymptomLogService) Create(ctx context.Context, userID string, input SymptomLogInput) (models.SymptomLog, error) {
	input = NormalizeLogInput(input)
	if err := ValidateLogInput(input); err != nil {
		return models.SymptomLog{}, err
	}

	entry := models.SymptomLog{UserID: userID}
	applyLogInput(&entry, input, service.location)
	if err := service.logs.CreateLog(ctx, &entry); err != nil {
		return models.SymptomLog{}, ErrLogSaveFailed
	}

	if err := service.syncPeriodStart(ctx, userID, input); err != nil {
		return entry, err
	}
	return entry, nil
}

func (service *SymptomLogService) Update(ctx context.Context, userID string, id string, input SymptomLogInput) (models.SymptomLog, error) {
	input = NormalizeLogInput(input)
	if err := ValidateLogInput(input); err != nil {
		return models.SymptomLog{}, err
	}

	entry, err := service.Get(ctx, userID, id)
	if err != nil {
		return models.SymptomLog{}, err
	}

	applyLogInput(&entry, input, service.location)
	if err := service.logs.UpdateLog(ctx, &entry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.SymptomLog{}, ErrLogNotFound
		}
		return models.SymptomLog{}, ErrLogSaveFailed
	}

	if err := service.syncPeriodStart(ctx, userID, input); err != nil {
		return entry, err
	}
	return entry, nil
}

func (service *SymptomLogService) Get(ctx context.Context, userID string, id string) (models.SymptomLog, error) {
	entry, err := service.logs.FindLog(ctx, userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.SymptomLog{}, ErrLogNotFound
		}
		return models.SymptomLog{}, ErrLogLoadFailed
	}
	return entry, nil
}

func (service *SymptomLogService) Delete(ctx context.Context, userID string, id string) error {
	if err := service.logs.DeleteLog(ctx, userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrLogNotFound
		}
		return ErrLogDeleteFailed
	}
	return nil
}

func (service *SymptomLogService) Recent(ctx context.Context, userID string, limit int) ([]models.SymptomLog, error) {
	if limit <= 0 {
		limit = DefaultLogWindowSize
	}
	logs, err := service.logs.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, ErrLogLoadFailed
	}
	return logs, nil
}

func (service *SymptomLogService) Range(ctx context.Context, userID string, from time.Time, to time.Time) ([]models.SymptomLog, error) {
	logs, err := service.logs.ListByDateRange(ctx, userID, CalendarDate(from, time.UTC), CalendarDate(to, time.UTC))
	if err != nil {
		return nil, ErrLogLoadFailed
	}
	return logs, nil
}

// syncPeriodStart moves the profile's last period start to a log marked as the first day of
// bleeding. Failures wrap ErrPeriodSyncFailed; the log itself is already saved by then.
func (service *SymptomLogService) syncPeriodStart(ctx context.Context, userID string, input SymptomLogInput) error {
	if !input.PeriodStart || input.FlowLevel == models.FlowNone || service.profiles == nil {
		return nil
	}

	profile, err := service.profiles.FindProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %w", ErrPeriodSyncFailed, ErrProfileLoadFailed)
		}
		profile = models.DefaultProfile(userID)
	}

	start := storedDate(input.Date, service.location)
	profile.LastPeriodStart = &start
	if err := service.profiles.SaveProfile(ctx, &profile); err != nil {
		return fmt.Errorf("%w: %w", ErrPeriodSyncFailed, ErrProfileSaveFailed)
	}
	return nil
}

func applyLogInput(entry *models.SymptomLog, input SymptomLogInput, location *time.Location) {
	entry.Date = storedDate(input.Date, location)
	entry.FlowLevel = input.FlowLevel
	entry.PainScale = input.PainScale
	entry.Mood = input.Mood
	entry.EnergyLevel = input.EnergyLevel
	entry.SleepHours = input.SleepHours
	entry.Notes = input.Notes
}

// storedDate is the calendar day of value in location, anchored at UTC midnight for storage.
func storedDate(value time.Time, location *time.Location) time.Time {
	return CalendarDate(DateAtLocation(value, location), time.UTC)
}
