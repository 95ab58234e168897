package services

import "errors"

var (
	ErrLogNotFound          = errors.New("symptom log not found")
	ErrInvalidLogInput      = errors.New("invalid symptom log input")
	ErrLogLoadFailed        = errors.New("load symptom logs failed")
	ErrLogSaveFailed        = errors.New("save symptom log failed")
	ErrLogDeleteFailed      = errors.New("delete symptom log failed")
	ErrPeriodSyncFailed     = errors.New("period start sync failed")
	ErrNoLogsToReport       = errors.New("no logs to report")
	ErrReportNotFound       = errors.New("report not found")
	ErrReportSaveFailed     = errors.New("save report failed")
	ErrProfileLoadFailed    = errors.New("load profile failed")
	ErrProfileSaveFailed    = errors.New("save profile failed")
	ErrInvalidProfileInput  = errors.New("invalid profile input")
	ErrClearDataFailed      = errors.New("clear data failed")
	ErrEmptyChatMessage     = errors.New("message is required")
	ErrAssistantUnavailable = errors.New("assistant request failed")
)
