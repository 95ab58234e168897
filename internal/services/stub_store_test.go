package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/terraincognita07/ovira/internal/models"
	"github.com/terraincognita07/ovira/internal/store"
)

type stubStore struct {
	logs     []models.SymptomLog
	reports  []models.HealthReport
	profiles map[string]models.Profile

	listErr         error
	createErr       error
	saveProfileErr  error
	createReportErr error
	deleteLogsErr   error

	nextID     int
	savedCount int
}

func newStubStore() *stubStore {
	return &stubStore{profiles: make(map[string]models.Profile)}
}

func (stub *stubStore) id() string {
	stub.nextID++
	return fmt.Sprintf("id-%d", stub.nextID)
}

func (stub *stubStore) CreateLog(_ context.Context, entry *models.SymptomLog) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	entry.ID = stub.id()
	stub.logs = append(stub.logs, *entry)
	return nil
}

func (stub *stubStore) UpdateLog(_ context.Context, entry *models.SymptomLog) error {
	for index := range stub.logs {
		if stub.logs[index].ID == entry.ID && stub.logs[index].UserID == entry.UserID {
			stub.logs[index] = *entry
			return nil
		}
	}
	return store.ErrNotFound
}

func (stub *stubStore) FindLog(_ context.Context, userID string, id string) (models.SymptomLog, error) {
	for _, entry := range stub.logs {
		if entry.ID == id && entry.UserID == userID {
			return entry, nil
		}
	}
	return models.SymptomLog{}, store.ErrNotFound
}

func (stub *stubStore) DeleteLog(_ context.Context, userID string, id string) error {
	for index, entry := range stub.logs {
		if entry.ID == id && entry.UserID == userID {
			stub.logs = append(stub.logs[:index], stub.logs[index+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (stub *stubStore) userLogs(userID string) []models.SymptomLog {
	result := make([]models.SymptomLog, 0, len(stub.logs))
	for _, entry := range stub.logs {
		if entry.UserID == userID {
			result = append(result, entry)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result
}

func (stub *stubStore) ListRecent(_ context.Context, userID string, limit int) ([]models.SymptomLog, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := stub.userLogs(userID)
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (stub *stubStore) ListByDateRange(_ context.Context, userID string, from time.Time, to time.Time) ([]models.SymptomLog, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.SymptomLog, 0)
	for _, entry := range stub.userLogs(userID) {
		if entry.Date.Before(from) || entry.Date.After(to) {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

func (stub *stubStore) DeleteAllLogs(_ context.Context, userID string) error {
	if stub.deleteLogsErr != nil {
		return stub.deleteLogsErr
	}
	kept := stub.logs[:0]
	for _, entry := range stub.logs {
		if entry.UserID != userID {
			kept = append(kept, entry)
		}
	}
	stub.logs = kept
	return nil
}

func (stub *stubStore) CreateReport(_ context.Context, report *models.HealthReport) error {
	if stub.createReportErr != nil {
		return stub.createReportErr
	}
	report.ID = stub.id()
	stub.reports = append(stub.reports, *report)
	return nil
}

func (stub *stubStore) ListReports(_ context.Context, userID string) ([]models.HealthReport, error) {
	result := make([]models.HealthReport, 0)
	for _, report := range stub.reports {
		if report.UserID == userID {
			result = append(result, report)
		}
	}
	return result, nil
}

func (stub *stubStore) FindReport(_ context.Context, userID string, id string) (models.HealthReport, error) {
	for _, report := range stub.reports {
		if report.ID == id && report.UserID == userID {
			return report, nil
		}
	}
	return models.HealthReport{}, store.ErrNotFound
}

func (stub *stubStore) DeleteAllReports(_ context.Context, userID string) error {
	kept := stub.reports[:0]
	for _, report := range stub.reports {
		if report.UserID != userID {
			kept = append(kept, report)
		}
	}
	stub.reports = kept
	return nil
}

func (stub *stubStore) FindProfile(_ context.Context, userID string) (models.Profile, error) {
	profile, ok := stub.profiles[userID]
	if !ok {
		return models.Profile{}, store.ErrNotFound
	}
	return profile, nil
}

func (stub *stubStore) SaveProfile(_ context.Context, profile *models.Profile) error {
	if stub.saveProfileErr != nil {
		return stub.saveProfileErr
	}
	stub.savedCount++
	stub.profiles[profile.UserID] = *profile
	return nil
}

func (stub *stubStore) DeleteProfile(_ context.Context, userID string) error {
	if _, ok := stub.profiles[userID]; !ok {
		return store.ErrNotFound
	}
	delete(stub.profiles, userID)
	return nil
}

func (stub *stubStore) Close() error { return nil }

var errStubFailure = errors.New("stub failure")

var _ store.Store = (*stubStore)(nil)

type stubRenderer struct {
	calls int
	err   error
}

func (renderer *stubRenderer) Render(report models.HealthReport, logs []models.SymptomLog) ([]byte, error) {
	renderer.calls++
	if renderer.err != nil {
		return nil, renderer.err
	}
	return []byte(fmt.Sprintf("report %s with %d logs", report.ID, len(logs))), nil
}
