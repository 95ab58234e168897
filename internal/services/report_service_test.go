package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/ovira/internal/models"
)

func TestReportServiceGenerate(t *testing.T) {
	stub := newStubStore()
	renderer := &stubRenderer{}
	ctx := context.Background()
	now := time.Date(2026, time.March, 10, 14, 0, 0, 0, time.UTC)
	day := mustParseServiceDay(t, "2026-03-10")

	for offset := 0; offset < 3; offset++ {
		stub.logs = append(stub.logs, models.SymptomLog{
			ID: "log", UserID: "user-1", Date: day.AddDate(0, 0, -offset),
			FlowLevel: models.FlowHeavy, PainScale: 8, Mood: models.MoodSad, EnergyLevel: 3, SleepHours: 4,
		})
	}
	stub.logs = append(stub.logs, models.SymptomLog{ID: "other", UserID: "user-2", Date: day, FlowLevel: models.FlowNone, EnergyLevel: 5})

	service := NewReportService(stub, stub, renderer, 0, 0)
	generated, err := service.Generate(ctx, "user-1", now)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	report := generated.Report
	if report.ID == "" {
		t.Fatal("expected persisted report id")
	}
	if len(generated.Logs) != 3 {
		t.Fatalf("expected 3 source logs, got %d", len(generated.Logs))
	}
	if !report.GeneratedAt.Equal(now) || !report.EndDate.Equal(now) || !report.StartDate.Equal(now.AddDate(0, 0, -DefaultReportWindowDays)) {
		t.Fatalf("unexpected report dates %#v", report)
	}
	if report.Risks.Level != models.RiskHigh || len(report.Risks.Flags) != 5 {
		t.Fatalf("unexpected risks %#v", report.Risks)
	}
	if report.CycleData.PeriodDays != 3 || report.CycleData.AverageLength != models.DefaultCycleLength {
		t.Fatalf("unexpected cycle data %#v", report.CycleData)
	}

	reports, err := service.List(ctx, "user-1")
	if err != nil || len(reports) != 1 {
		t.Fatalf("expected one stored report, got %d (%v)", len(reports), err)
	}

	_, document, err := service.Document(ctx, "user-1", report.ID)
	if err != nil {
		t.Fatalf("Document() unexpected error: %v", err)
	}
	if len(document) == 0 || renderer.calls != 1 {
		t.Fatalf("expected rendered document, calls=%d", renderer.calls)
	}
}

func TestReportServiceGenerateWithoutLogs(t *testing.T) {
	stub := newStubStore()
	service := NewReportService(stub, stub, &stubRenderer{}, 0, 0)

	_, err := service.Generate(context.Background(), "user-1", time.Now())
	if !errors.Is(err, ErrNoLogsToReport) {
		t.Fatalf("expected ErrNoLogsToReport, got %v", err)
	}
	if len(stub.reports) != 0 {
		t.Fatalf("expected nothing persisted, got %d reports", len(stub.reports))
	}
}

func TestReportServiceErrors(t *testing.T) {
	stub := newStubStore()
	stub.logs = []models.SymptomLog{{ID: "a", UserID: "user-1", Date: mustParseServiceDay(t, "2026-03-10"), EnergyLevel: 5}}
	ctx := context.Background()

	stub.createReportErr = errStubFailure
	service := NewReportService(stub, stub, &stubRenderer{}, 0, 0)
	if _, err := service.Generate(ctx, "user-1", time.Now()); !errors.Is(err, ErrReportSaveFailed) {
		t.Fatalf("expected ErrReportSaveFailed, got %v", err)
	}

	if _, err := service.Get(ctx, "user-1", "missing"); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}

	stub.createReportErr = nil
	generated, err := service.Generate(ctx, "user-1", time.Now())
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if _, err := service.Get(ctx, "user-2", generated.Report.ID); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected foreign report to be hidden, got %v", err)
	}

	failing := NewReportService(stub, stub, &stubRenderer{err: errStubFailure}, 0, 0)
	if _, err := failing.Render(generated); !errors.Is(err, errStubFailure) {
		t.Fatalf("expected wrapped renderer error, got %v", err)
	}

	unconfigured := NewReportService(stub, stub, nil, 0, 0)
	if _, err := unconfigured.Render(generated); err == nil {
		t.Fatal("expected error without renderer")
	}
}
