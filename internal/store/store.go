// Package store holds the persistence contracts shared by the SQL-backed repositories and the
// in-memory store.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/terraincognita07/ovira/internal/models"
)

var ErrNotFound = errors.New("record not found")

type SymptomLogStore interface {
	CreateLog(ctx context.Context, entry *models.SymptomLog) error
	UpdateLog(ctx context.Context, entry *models.SymptomLog) error
	FindLog(ctx context.Context, userID string, id string) (models.SymptomLog, error)
	DeleteLog(ctx context.Context, userID string, id string) error
	// ListRecent returns the newest entries first, by date then creation time.
	ListRecent(ctx context.Context, userID string, limit int) ([]models.SymptomLog, error)
	// ListByDateRange is inclusive on both calendar dates and returns the newest entries first.
	ListByDateRange(ctx context.Context, userID string, from time.Time, to time.Time) ([]models.SymptomLog, error)
	DeleteAllLogs(ctx context.Context, userID string) error
}

type ReportStore interface {
	CreateReport(ctx context.Context, report *models.HealthReport) error
	ListReports(ctx context.Context, userID string) ([]models.HealthReport, error)
	FindReport(ctx context.Context, userID string, id string) (models.HealthReport, error)
	DeleteAllReports(ctx context.Context, userID string) error
}

type ProfileStore interface {
	FindProfile(ctx context.Context, userID string) (models.Profile, error)
	SaveProfile(ctx context.Context, profile *models.Profile) error
	DeleteProfile(ctx context.Context, userID string) error
}

// Store bundles every collaborator the services need; both backends satisfy it.
type Store interface {
	SymptomLogStore
	ReportStore
	ProfileStore
	Close() error
}
