package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/ovira/internal/models"
	"github.com/terraincognita07/ovira/internal/store"
	"gorm.io/datatypes"
)

var knownAgeRanges = map[string]struct{}{
	"":         {},
	"Under 18": {},
	"18-24":    {},
	"25-34":    {},
	"35-44":    {},
	"45-54":    {},
	"55+":      {},
}

type ProfileRepository interface {
	FindProfile(ctx context.Context, userID string) (models.Profile, error)
	SaveProfile(ctx context.Context, profile *models.Profile) error
	DeleteProfile(ctx context.Context, userID string) error
}

type DataEraser interface {
	DeleteAllLogs(ctx context.Context, userID string) error
	DeleteAllReports(ctx context.Context, userID string) error
}

type ProfileService struct {
	profiles ProfileRepository
	data     DataEraser
	location *time.Location
}

type ProfileInput struct {
	DisplayName        *string
	AgeRange           *string
	KnownConditions    []string
	LastPeriodStart    *time.Time
	ClearPeriodStart   bool
	AverageCycleLength *int
}

func NewProfileService(profiles ProfileRepository, data DataEraser, location *time.Location) *ProfileService {
	if location == nil {
		location = time.UTC
	}
	return &ProfileService{
		profiles: profiles,
		data:     data,
		location: location,
	}
}

// Get returns the stored profile or the defaults for users who never saved one.
func (service *ProfileService) Get(ctx context.Context, userID string) (models.Profile, error) {
	profile, err := service.profiles.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.DefaultProfile(userID), nil
		}
		return models.Profile{}, ErrProfileLoadFailed
	}
	if profile.AverageCycleLength < 1 {
		profile.AverageCycleLength = models.DefaultCycleLength
	}
	return profile, nil
}

func (service *ProfileService) Update(ctx context.Context, userID string, input ProfileInput) (models.Profile, error) {
	if err := ValidateProfileInput(input); err != nil {
		return models.Profile{}, err
	}

	profile, err := service.Get(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}

	if input.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.AgeRange != nil {
		profile.AgeRange = strings.TrimSpace(*input.AgeRange)
	}
	if input.KnownConditions != nil {
		profile.KnownConditions = normalizeConditions(input.KnownConditions)
	}
	if input.ClearPeriodStart {
		profile.LastPeriodStart = nil
	} else if input.LastPeriodStart != nil {
		start := storedDate(*input.LastPeriodStart, service.location)
		profile.LastPeriodStart = &start
	}
	if input.AverageCycleLength != nil {
		profile.AverageCycleLength = *input.AverageCycleLength
	}

	if err := service.profiles.SaveProfile(ctx, &profile); err != nil {
		return models.Profile{}, ErrProfileSaveFailed
	}
	return profile, nil
}

// DeleteAllData erases logs, reports and the profile of a user.
func (service *ProfileService) DeleteAllData(ctx context.Context, userID string) error {
	if err := service.data.DeleteAllLogs(ctx, userID); err != nil {
		return ErrClearDataFailed
	}
	if err := service.data.DeleteAllReports(ctx, userID); err != nil {
		return ErrClearDataFailed
	}
	if err := service.profiles.DeleteProfile(ctx, userID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return ErrClearDataFailed
	}
	return nil
}

func ValidateProfileInput(input ProfileInput) error {
	if input.AverageCycleLength != nil && !IsValidCycleLength(*input.AverageCycleLength) {
		return ErrInvalidProfileInput
	}
	if input.AgeRange != nil {
		if _, ok := knownAgeRanges[strings.TrimSpace(*input.AgeRange)]; !ok {
			return ErrInvalidProfileInput
		}
	}
	if input.DisplayName != nil && len([]rune(strings.TrimSpace(*input.DisplayName))) > 64 {
		return ErrInvalidProfileInput
	}
	return nil
}

func IsValidCycleLength(value int) bool {
	return value >= models.MinCycleLength && value <= models.MaxCycleLength
}

func normalizeConditions(values []string) datatypes.JSONSlice[string] {
	seen := make(map[string]struct{}, len(values))
	normalized := make(datatypes.JSONSlice[string], 0, len(values))
	for _, value := range values {
		condition := strings.ToLower(strings.TrimSpace(value))
		if condition == "" {
			continue
		}
		if _, dup := seen[condition]; dup {
			continue
		}
		seen[condition] = struct{}{}
		normalized = append(normalized, condition)
	}
	return normalized
}
