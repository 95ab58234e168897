// Package memstore keeps every record in process memory. It backs STORE_DRIVER=memory and the
// demo mode.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/ovira/internal/models"
	"github.com/terraincognita07/ovira/internal/store"
	"gorm.io/datatypes"
)

type Store struct {
	mu       sync.RWMutex
	logs     map[string]storedLog
	reports  map[string]models.HealthReport
	profiles map[string]models.Profile
	sequence uint64
	now      func() time.Time
}

// storedLog remembers insertion order so entries created within the same clock tick still sort
// deterministically.
type storedLog struct {
	entry    models.SymptomLog
	sequence uint64
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		logs:     make(map[string]storedLog),
		reports:  make(map[string]models.HealthReport),
		profiles: make(map[string]models.Profile),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) CreateLog(_ context.Context, entry *models.SymptomLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := s.now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	s.sequence++
	s.logs[entry.ID] = storedLog{entry: *entry, sequence: s.sequence}
	return nil
}

func (s *Store) UpdateLog(_ context.Context, entry *models.SymptomLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.logs[entry.ID]
	if !ok || existing.entry.UserID != entry.UserID {
		return store.ErrNotFound
	}
	entry.CreatedAt = existing.entry.CreatedAt
	entry.UpdatedAt = s.now()
	existing.entry = *entry
	s.logs[entry.ID] = existing
	return nil
}

func (s *Store) FindLog(_ context.Context, userID string, id string) (models.SymptomLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.logs[id]
	if !ok || stored.entry.UserID != userID {
		return models.SymptomLog{}, store.ErrNotFound
	}
	return stored.entry, nil
}

func (s *Store) DeleteLog(_ context.Context, userID string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.logs[id]
	if !ok || stored.entry.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.logs, id)
	return nil
}

func (s *Store) ListRecent(_ context.Context, userID string, limit int) ([]models.SymptomLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := s.userLogs(userID, func(models.SymptomLog) bool { return true })
	if limit >= 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (s *Store) ListByDateRange(_ context.Context, userID string, from time.Time, to time.Time) ([]models.SymptomLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.userLogs(userID, func(entry models.SymptomLog) bool {
		return !entry.Date.Before(from) && !entry.Date.After(to)
	}), nil
}

func (s *Store) DeleteAllLogs(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, stored := range s.logs {
		if stored.entry.UserID == userID {
			delete(s.logs, id)
		}
	}
	return nil
}

// userLogs returns matching entries newest first. Callers hold the read lock.
func (s *Store) userLogs(userID string, keep func(models.SymptomLog) bool) []models.SymptomLog {
	matched := make([]storedLog, 0)
	for _, stored := range s.logs {
		if stored.entry.UserID == userID && keep(stored.entry) {
			matched = append(matched, stored)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		left, right := matched[i], matched[j]
		if !left.entry.Date.Equal(right.entry.Date) {
			return left.entry.Date.After(right.entry.Date)
		}
		return left.sequence > right.sequence
	})

	logs := make([]models.SymptomLog, 0, len(matched))
	for _, stored := range matched {
		logs = append(logs, stored.entry)
	}
	return logs
}

func (s *Store) CreateReport(_ context.Context, report *models.HealthReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	s.reports[report.ID] = cloneReport(*report)
	return nil
}

func (s *Store) ListReports(_ context.Context, userID string) ([]models.HealthReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]models.HealthReport, 0)
	for _, report := range s.reports {
		if report.UserID == userID {
			reports = append(reports, cloneReport(report))
		}
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].GeneratedAt.After(reports[j].GeneratedAt)
	})
	return reports, nil
}

func (s *Store) FindReport(_ context.Context, userID string, id string) (models.HealthReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.reports[id]
	if !ok || report.UserID != userID {
		return models.HealthReport{}, store.ErrNotFound
	}
	return cloneReport(report), nil
}

func (s *Store) DeleteAllReports(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, report := range s.reports {
		if report.UserID == userID {
			delete(s.reports, id)
		}
	}
	return nil
}

func (s *Store) FindProfile(_ context.Context, userID string) (models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return models.Profile{}, store.ErrNotFound
	}
	return cloneProfile(profile), nil
}

func (s *Store) SaveProfile(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if existing, ok := s.profiles[profile.UserID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	s.profiles[profile.UserID] = cloneProfile(*profile)
	return nil
}

func (s *Store) DeleteProfile(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[userID]; !ok {
		return store.ErrNotFound
	}
	delete(s.profiles, userID)
	return nil
}

func cloneReport(report models.HealthReport) models.HealthReport {
	report.Symptoms.CommonMoods = cloneStrings(report.Symptoms.CommonMoods)
	report.Risks.Flags = cloneStrings(report.Risks.Flags)
	return report
}

func cloneProfile(profile models.Profile) models.Profile {
	profile.KnownConditions = cloneStrings(profile.KnownConditions)
	if profile.LastPeriodStart != nil {
		start := *profile.LastPeriodStart
		profile.LastPeriodStart = &start
	}
	return profile
}

func cloneStrings(values datatypes.JSONSlice[string]) datatypes.JSONSlice[string] {
	if values == nil {
		return nil
	}
	cloned := make(datatypes.JSONSlice[string], len(values))
	copy(cloned, values)
	return cloned
}
