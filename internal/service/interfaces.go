// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/sitegentech/atendo/internal/model"
)

// AttendanceFilter defines filtering options for attendance queries.
type AttendanceFilter struct {
	Since   *time.Time
	Until   *time.Time
	AgentID string
	Status  string
	Limit   int
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Attendance operations
	SaveAttendance(ctx context.Context, att *model.Attendance) error
	UpdateAttendance(ctx context.Context, att *model.Attendance) error
	GetOpenAttendanceByPhone(ctx context.Context, phone string) (*model.Attendance, error)
	GetAttendances(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, error)
	GetAttendanceCount(ctx context.Context, since, until time.Time) (int, error)
	GetAttendanceStartTimes(ctx context.Context, since time.Time) ([]time.Time, error)

	// Transfer operations
	SaveTransfer(ctx context.Context, transfer *model.Transfer) error
	GetTransfers(ctx context.Context, since time.Time) ([]model.Transfer, error)

	// Presence operations
	UpsertAgentStatus(ctx context.Context, status *model.AgentStatus) error
	GetAgentStatuses(ctx context.Context) ([]model.AgentStatus, error)

	// Ranking operations
	UpsertRankingEntries(ctx context.Context, entries []model.RankingEntry) error
	GetRanking(ctx context.Context, period model.RankingPeriod, referenceDate string) ([]model.RankingEntry, error)

	// Forecast operations
	UpsertForecast(ctx context.Context, forecast *model.Forecast) error
	GetForecast(ctx context.Context, kind model.ForecastKind, referenceDate string) (*model.Forecast, error)

	// Classification feedback
	SaveClassificationFeedback(ctx context.Context, fb *model.ClassificationFeedback) error
	GetClassificationFeedback(ctx context.Context, since time.Time) ([]model.ClassificationFeedback, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for transient failures.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// ReportSender delivers a rendered report to its recipients.
type ReportSender interface {
	Send(ctx context.Context, subject, htmlBody string) error
}
