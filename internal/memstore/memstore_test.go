package memstore

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/terraincognita07/ovira/internal/models"
	"github.com/terraincognita07/ovira/internal/store"
	"github.com/terraincognita07/ovira/internal/store/storetest"
	"gorm.io/datatypes"
)

func TestMemoryStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	report := models.HealthReport{UserID: "user-1", Risks: models.ReportRisks{Flags: datatypes.JSONSlice[string]{"flag"}}}
	if err := s.CreateReport(ctx, &report); err != nil {
		t.Fatalf("CreateReport() unexpected error: %v", err)
	}
	report.Risks.Flags[0] = "mutated"

	found, err := s.FindReport(ctx, "user-1", report.ID)
	if err != nil {
		t.Fatalf("FindReport() unexpected error: %v", err)
	}
	if found.Risks.Flags[0] != "flag" {
		t.Fatalf("expected stored report isolated from caller, got %#v", found.Risks.Flags)
	}
}

func TestMemoryStoreConcurrentWrites(t *testing.T) {
	s := New()
	ctx := context.Background()
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				entry := models.SymptomLog{UserID: "user-1", Date: day.AddDate(0, 0, -i), EnergyLevel: 5}
				if err := s.CreateLog(ctx, &entry); err != nil {
					t.Errorf("CreateLog() unexpected error: %v", err)
				}
				if _, err := s.ListRecent(ctx, "user-1", 5); err != nil {
					t.Errorf("ListRecent() unexpected error: %v", err)
				}
			}
		}(worker)
	}
	wg.Wait()

	logs, err := s.ListRecent(ctx, "user-1", 1000)
	if err != nil {
		t.Fatalf("ListRecent() unexpected error: %v", err)
	}
	if len(logs) != 200 {
		t.Fatalf("expected 200 logs, got %d", len(logs))
	}
}

func TestDemoLogsAreDeterministic(t *testing.T) {
	today := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

	first := DemoLogs("demo", today, DemoSeedKey)
	second := DemoLogs("demo", today, DemoSeedKey)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical demo logs for the same seed")
	}
	if len(first) != DemoDays {
		t.Fatalf("expected %d demo logs, got %d", DemoDays, len(first))
	}
	if first[0].Date.Format("2006-01-02") != "2026-03-10" || first[0].Notes == "" {
		t.Fatalf("expected newest log today with a note, got %#v", first[0])
	}

	for index, entry := range first {
		cycleDay := (DemoDays - index) % models.DefaultCycleLength
		onPeriod := cycleDay >= 1 && cycleDay <= 5
		if onPeriod != (entry.FlowLevel != models.FlowNone) {
			t.Fatalf("log %d: unexpected flow %q for cycle day %d", index, entry.FlowLevel, cycleDay)
		}
		if entry.EnergyLevel < 5 || entry.EnergyLevel > 8 || entry.SleepHours < 6 || entry.SleepHours > 8 {
			t.Fatalf("log %d: values out of demo range %#v", index, entry)
		}
		if !entry.Mood.IsValid() {
			t.Fatalf("log %d: invalid mood %q", index, entry.Mood)
		}
	}
}

func TestSeedWritesDemoLogs(t *testing.T) {
	s := New()
	count, err := Seed(context.Background(), s, DemoUserID, time.Now(), DemoSeedKey)
	if err != nil {
		t.Fatalf("Seed() unexpected error: %v", err)
	}
	logs, err := s.ListRecent(context.Background(), DemoUserID, 30)
	if err != nil {
		t.Fatalf("ListRecent() unexpected error: %v", err)
	}
	if count != DemoDays || len(logs) != DemoDays {
		t.Fatalf("expected %d seeded logs, got count=%d stored=%d", DemoDays, count, len(logs))
	}
}
