package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/ovira/internal/models"
	"github.com/terraincognita07/ovira/internal/store"
)

const DefaultReportWindowDays = 30

type ReportLogReader interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]models.SymptomLog, error)
}

type ReportRepository interface {
	CreateReport(ctx context.Context, report *models.HealthReport) error
	ListReports(ctx context.Context, userID string) ([]models.HealthReport, error)
	FindReport(ctx context.Context, userID string, id string) (models.HealthReport, error)
}

type ReportRenderer interface {
	Render(report models.HealthReport, logs []models.SymptomLog) ([]byte, error)
}

type ReportService struct {
	logs       ReportLogReader
	reports    ReportRepository
	renderer   ReportRenderer
	windowSize int
	windowDays int
}

type GeneratedReport struct {
	Report models.HealthReport
	Logs   []models.SymptomLog
}

func NewReportService(logs ReportLogReader, reports ReportRepository, renderer ReportRenderer, windowSize int, windowDays int) *ReportService {
	if windowSize <= 0 {
		windowSize = DefaultLogWindowSize
	}
	if windowDays <= 0 {
		windowDays = DefaultReportWindowDays
	}
	return &ReportService{
		logs:       logs,
		reports:    reports,
		renderer:   renderer,
		windowSize: windowSize,
		windowDays: windowDays,
	}
}

// Generate analyzes the recent log window, persists the aggregated snapshot and returns it
// with the logs it was built from.
func (service *ReportService) Generate(ctx context.Context, userID string, now time.Time) (GeneratedReport, error) {
	logs, err := service.logs.ListRecent(ctx, userID, service.windowSize)
	if err != nil {
		return GeneratedReport{}, ErrLogLoadFailed
	}
	if len(logs) == 0 {
		return GeneratedReport{}, ErrNoLogsToReport
	}

	report := AggregateReport(ReportInput{
		UserID:      userID,
		Logs:        logs,
		Risk:        AnalyzeHealthRisks(logs),
		StartDate:   now.AddDate(0, 0, -service.windowDays),
		EndDate:     now,
		GeneratedAt: now,
	})
	if err := service.reports.CreateReport(ctx, &report); err != nil {
		return GeneratedReport{}, ErrReportSaveFailed
	}

	return GeneratedReport{Report: report, Logs: logs}, nil
}

func (service *ReportService) List(ctx context.Context, userID string) ([]models.HealthReport, error) {
	reports, err := service.reports.ListReports(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func (service *ReportService) Get(ctx context.Context, userID string, id string) (models.HealthReport, error) {
	report, err := service.reports.FindReport(ctx, userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.HealthReport{}, ErrReportNotFound
		}
		return models.HealthReport{}, fmt.Errorf("find report: %w", err)
	}
	return report, nil
}

// Document renders a stored report together with the current recent log window.
func (service *ReportService) Document(ctx context.Context, userID string, id string) (models.HealthReport, []byte, error) {
	report, err := service.Get(ctx, userID, id)
	if err != nil {
		return models.HealthReport{}, nil, err
	}

	logs, err := service.logs.ListRecent(ctx, userID, service.windowSize)
	if err != nil {
		return models.HealthReport{}, nil, ErrLogLoadFailed
	}

	document, err := service.Render(GeneratedReport{Report: report, Logs: logs})
	if err != nil {
		return models.HealthReport{}, nil, err
	}
	return report, document, nil
}

func (service *ReportService) Render(generated GeneratedReport) ([]byte, error) {
	if service.renderer == nil {
		return nil, errors.New("report renderer is not configured")
	}
	document, err := service.renderer.Render(generated.Report, generated.Logs)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return document, nil
}
