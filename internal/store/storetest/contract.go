// Package storetest checks that a store.Store implementation honours the shared contract.
package storetest

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/terraincognita07/ovira/internal/models"
	"github.com/terraincognita07/ovira/internal/store"
	"gorm.io/datatypes"
)

const dayLayout = "2006-01-02"

// Run exercises every store method against fresh stores built by newStore.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("SymptomLogs", func(t *testing.T) { testSymptomLogs(t, newStore(t)) })
	t.Run("SymptomLogRanges", func(t *testing.T) { testSymptomLogRanges(t, newStore(t)) })
	t.Run("Reports", func(t *testing.T) { testReports(t, newStore(t)) })
	t.Run("Profiles", func(t *testing.T) { testProfiles(t, newStore(t)) })
}

func day(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation(dayLayout, raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return parsed
}

func testSymptomLogs(t *testing.T, s store.Store) {
	ctx := context.Background()
	entry := models.SymptomLog{
		UserID:      "user-1",
		Date:        day(t, "2026-03-10"),
		FlowLevel:   models.FlowMedium,
		PainScale:   6,
		Mood:        models.MoodAnxious,
		EnergyLevel: 4,
		SleepHours:  6.5,
		Notes:       "headache",
	}
	if err := s.CreateLog(ctx, &entry); err != nil {
		t.Fatalf("CreateLog() unexpected error: %v", err)
	}
	if entry.ID == "" {
		t.Fatal("expected CreateLog to assign an id")
	}

	found, err := s.FindLog(ctx, "user-1", entry.ID)
	if err != nil {
		t.Fatalf("FindLog() unexpected error: %v", err)
	}
	if found.Date.Format(dayLayout) != "2026-03-10" || found.FlowLevel != models.FlowMedium || found.Mood != models.MoodAnxious {
		t.Fatalf("unexpected stored log %#v", found)
	}
	if found.PainScale != 6 || found.EnergyLevel != 4 || found.SleepHours != 6.5 || found.Notes != "headache" {
		t.Fatalf("unexpected stored log %#v", found)
	}

	if _, err := s.FindLog(ctx, "user-2", entry.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign user, got %v", err)
	}

	entry.PainScale = 2
	entry.Mood = models.MoodCalm
	if err := s.UpdateLog(ctx, &entry); err != nil {
		t.Fatalf("UpdateLog() unexpected error: %v", err)
	}
	found, err = s.FindLog(ctx, "user-1", entry.ID)
	if err != nil {
		t.Fatalf("FindLog() unexpected error: %v", err)
	}
	if found.PainScale != 2 || found.Mood != models.MoodCalm {
		t.Fatalf("expected updated log, got %#v", found)
	}

	foreign := entry
	foreign.UserID = "user-2"
	if err := s.UpdateLog(ctx, &foreign); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on foreign update, got %v", err)
	}

	if err := s.DeleteLog(ctx, "user-1", entry.ID); err != nil {
		t.Fatalf("DeleteLog() unexpected error: %v", err)
	}
	if err := s.DeleteLog(ctx, "user-1", entry.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func testSymptomLogRanges(t *testing.T, s store.Store) {
	ctx := context.Background()
	today := day(t, "2026-03-10")

	for offset := 0; offset < 10; offset++ {
		entry := models.SymptomLog{UserID: "user-1", Date: today.AddDate(0, 0, -offset), FlowLevel: models.FlowNone, Mood: models.MoodCalm, EnergyLevel: 5}
		if err := s.CreateLog(ctx, &entry); err != nil {
			t.Fatalf("CreateLog() unexpected error: %v", err)
		}
	}
	other := models.SymptomLog{UserID: "user-2", Date: today, FlowLevel: models.FlowNone, Mood: models.MoodCalm, EnergyLevel: 5}
	if err := s.CreateLog(ctx, &other); err != nil {
		t.Fatalf("CreateLog() unexpected error: %v", err)
	}

	recent, err := s.ListRecent(ctx, "user-1", 3)
	if err != nil {
		t.Fatalf("ListRecent() unexpected error: %v", err)
	}
	if got := logDays(recent); !reflect.DeepEqual(got, []string{"2026-03-10", "2026-03-09", "2026-03-08"}) {
		t.Fatalf("expected newest three days, got %v", got)
	}

	ranged, err := s.ListByDateRange(ctx, "user-1", today.AddDate(0, 0, -4), today.AddDate(0, 0, -2))
	if err != nil {
		t.Fatalf("ListByDateRange() unexpected error: %v", err)
	}
	if got := logDays(ranged); !reflect.DeepEqual(got, []string{"2026-03-08", "2026-03-07", "2026-03-06"}) {
		t.Fatalf("expected inclusive range newest first, got %v", got)
	}

	if err := s.DeleteAllLogs(ctx, "user-1"); err != nil {
		t.Fatalf("DeleteAllLogs() unexpected error: %v", err)
	}
	remaining, err := s.ListRecent(ctx, "user-1", 30)
	if err != nil || len(remaining) != 0 {
		t.Fatalf("expected no logs after erase, got %d (%v)", len(remaining), err)
	}
	otherLogs, err := s.ListRecent(ctx, "user-2", 30)
	if err != nil || len(otherLogs) != 1 {
		t.Fatalf("expected foreign logs untouched, got %d (%v)", len(otherLogs), err)
	}
}

func testReports(t *testing.T, s store.Store) {
	ctx := context.Background()
	generated := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

	first := models.HealthReport{
		UserID:      "user-1",
		GeneratedAt: generated,
		StartDate:   day(t, "2026-02-08"),
		EndDate:     day(t, "2026-03-10"),
		CycleData:   models.ReportCycleData{AverageLength: 28, PeriodDays: 4},
		Symptoms: models.ReportSymptoms{
			AveragePain:   3.4,
			CommonMoods:   datatypes.JSONSlice[string]{"calm", "sad"},
			AverageEnergy: 5.5,
			AverageSleep:  7.1,
		},
		Risks: models.ReportRisks{Level: models.RiskMedium, Flags: datatypes.JSONSlice[string]{"flag"}},
	}
	second := first
	second.GeneratedAt = generated.Add(time.Hour)
	second.Risks = models.ReportRisks{Level: models.RiskLow, Flags: datatypes.JSONSlice[string]{}}

	for _, report := range []*models.HealthReport{&first, &second} {
		if err := s.CreateReport(ctx, report); err != nil {
			t.Fatalf("CreateReport() unexpected error: %v", err)
		}
		if report.ID == "" {
			t.Fatal("expected CreateReport to assign an id")
		}
	}

	found, err := s.FindReport(ctx, "user-1", first.ID)
	if err != nil {
		t.Fatalf("FindReport() unexpected error: %v", err)
	}
	if found.CycleData != first.CycleData || found.Symptoms.AveragePain != 3.4 || found.Risks.Level != models.RiskMedium {
		t.Fatalf("unexpected stored report %#v", found)
	}
	if !reflect.DeepEqual([]string(found.Symptoms.CommonMoods), []string{"calm", "sad"}) || !reflect.DeepEqual([]string(found.Risks.Flags), []string{"flag"}) {
		t.Fatalf("unexpected stored lists %#v", found)
	}
	if !found.GeneratedAt.Equal(generated) {
		t.Fatalf("expected generated at %s, got %s", generated, found.GeneratedAt)
	}

	if _, err := s.FindReport(ctx, "user-2", first.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign user, got %v", err)
	}

	reports, err := s.ListReports(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListReports() unexpected error: %v", err)
	}
	if len(reports) != 2 || reports[0].ID != second.ID {
		t.Fatalf("expected newest report first, got %#v", reports)
	}

	if err := s.DeleteAllReports(ctx, "user-1"); err != nil {
		t.Fatalf("DeleteAllReports() unexpected error: %v", err)
	}
	reports, err = s.ListReports(ctx, "user-1")
	if err != nil || len(reports) != 0 {
		t.Fatalf("expected no reports after erase, got %d (%v)", len(reports), err)
	}
}

func testProfiles(t *testing.T, s store.Store) {
	ctx := context.Background()

	if _, err := s.FindProfile(ctx, "user-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before save, got %v", err)
	}

	start := day(t, "2026-03-01")
	profile := models.DefaultProfile("user-1")
	profile.DisplayName = "Ada"
	profile.LastPeriodStart = &start
	profile.KnownConditions = datatypes.JSONSlice[string]{"pcos"}
	if err := s.SaveProfile(ctx, &profile); err != nil {
		t.Fatalf("SaveProfile() unexpected error: %v", err)
	}

	profile.AverageCycleLength = 32
	profile.AgeRange = "25-34"
	if err := s.SaveProfile(ctx, &profile); err != nil {
		t.Fatalf("SaveProfile() second save unexpected error: %v", err)
	}

	found, err := s.FindProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("FindProfile() unexpected error: %v", err)
	}
	if found.DisplayName != "Ada" || found.AgeRange != "25-34" || found.AverageCycleLength != 32 {
		t.Fatalf("unexpected stored profile %#v", found)
	}
	if found.LastPeriodStart == nil || found.LastPeriodStart.Format(dayLayout) != "2026-03-01" {
		t.Fatalf("expected last period start 2026-03-01, got %v", found.LastPeriodStart)
	}
	if !reflect.DeepEqual([]string(found.KnownConditions), []string{"pcos"}) {
		t.Fatalf("unexpected known conditions %#v", found.KnownConditions)
	}

	if err := s.DeleteProfile(ctx, "user-1"); err != nil {
		t.Fatalf("DeleteProfile() unexpected error: %v", err)
	}
	if err := s.DeleteProfile(ctx, "user-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func logDays(logs []models.SymptomLog) []string {
	days := make([]string, 0, len(logs))
	for _, entry := range logs {
		days = append(days, entry.Date.Format(dayLayout))
	}
	return days
}
