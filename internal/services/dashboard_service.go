package services

import (
	"context"
	"time"

	"github.com/terraincognita07/ovira/internal/models"
	"golang.org/x/sync/errgroup"
)

type DashboardLogReader interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]models.SymptomLog, error)
	ListByDateRange(ctx context.Context, userID string, from time.Time, to time.Time) ([]models.SymptomLog, error)
}

type DashboardProfileReader interface {
	Get(ctx context.Context, userID string) (models.Profile, error)
}

type DashboardAverages struct {
	Pain   *float64 `json:"pain"`
	Energy *float64 `json:"energy"`
	Sleep  *float64 `json:"sleep"`
}

type Dashboard struct {
	Risk      models.HealthRisk       `json:"risk"`
	Cycle     *models.CyclePrediction `json:"cycle"`
	Streak    int                     `json:"streak"`
	Averages  DashboardAverages       `json:"averages"`
	LatestLog *models.SymptomLog      `json:"latest_log"`
	LogCount  int                     `json:"log_count"`
}

type DashboardService struct {
	logs       DashboardLogReader
	profiles   DashboardProfileReader
	location   *time.Location
	windowSize int
}

func NewDashboardService(logs DashboardLogReader, profiles DashboardProfileReader, location *time.Location, windowSize int) *DashboardService {
	if location == nil {
		location = time.UTC
	}
	if windowSize <= 0 {
		windowSize = DefaultLogWindowSize
	}
	return &DashboardService{
		logs:       logs,
		profiles:   profiles,
		location:   location,
		windowSize: windowSize,
	}
}

func (service *DashboardService) Build(ctx context.Context, userID string, now time.Time) (Dashboard, error) {
	today := DateAtLocation(now, service.location)

	var (
		recent     []models.SymptomLog
		streakLogs []models.SymptomLog
		profile    models.Profile
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logs, err := service.logs.ListRecent(groupCtx, userID, service.windowSize)
		if err != nil {
			return ErrLogLoadFailed
		}
		recent = logs
		return nil
	})
	group.Go(func() error {
		logs, err := service.StreakWindow(groupCtx, userID, today)
		if err != nil {
			return err
		}
		streakLogs = logs
		return nil
	})
	group.Go(func() error {
		loaded, err := service.profiles.Get(groupCtx, userID)
		if err != nil {
			return err
		}
		profile = loaded
		return nil
	})
	if err := group.Wait(); err != nil {
		return Dashboard{}, err
	}

	dashboard := Dashboard{
		Risk:     AnalyzeHealthRisks(recent),
		Cycle:    PredictNextPeriod(profile.LastPeriodStart, NormalizeCycleLength(profile.AverageCycleLength), today),
		Streak:   CalculateStreak(streakLogs, today),
		Averages: windowAverages(recent),
		LogCount: len(recent),
	}
	if len(recent) > 0 {
		latest := recent[0]
		dashboard.LatestLog = &latest
	}
	return dashboard, nil
}

// Risk analyzes the most recent log window.
func (service *DashboardService) Risk(ctx context.Context, userID string) (models.HealthRisk, error) {
	logs, err := service.logs.ListRecent(ctx, userID, service.windowSize)
	if err != nil {
		return models.HealthRisk{}, ErrLogLoadFailed
	}
	return AnalyzeHealthRisks(logs), nil
}

// Cycle returns nil when the profile has no last period start.
func (service *DashboardService) Cycle(ctx context.Context, userID string, now time.Time) (*models.CyclePrediction, error) {
	profile, err := service.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := DateAtLocation(now, service.location)
	return PredictNextPeriod(profile.LastPeriodStart, NormalizeCycleLength(profile.AverageCycleLength), today), nil
}

func (service *DashboardService) Streak(ctx context.Context, userID string, now time.Time) (int, error) {
	today := DateAtLocation(now, service.location)
	logs, err := service.StreakWindow(ctx, userID, today)
	if err != nil {
		return 0, err
	}
	return CalculateStreak(logs, today), nil
}

// StreakWindow loads the logs the streak scan can reach: the last StreakWindowDays calendar days.
func (service *DashboardService) StreakWindow(ctx context.Context, userID string, today time.Time) ([]models.SymptomLog, error) {
	to := CalendarDate(today, time.UTC)
	from := to.AddDate(0, 0, -(StreakWindowDays - 1))
	logs, err := service.logs.ListByDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, ErrLogLoadFailed
	}
	return logs, nil
}

func windowAverages(logs []models.SymptomLog) DashboardAverages {
	if len(logs) == 0 {
		return DashboardAverages{}
	}
	stats := summarizeSymptomWindow(logs)
	pain := roundToTenth(stats.AveragePain)
	energy := roundToTenth(stats.AverageEnergy)
	sleep := roundToTenth(stats.AverageSleep)
	return DashboardAverages{Pain: &pain, Energy: &energy, Sleep: &sleep}
}
