package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sitegentech/atendo/internal/service"
)

// DefaultPeriod labels the standard scheduled report.
const DefaultPeriod = "Diário"

// Reporter builds the daily summary from storage and delivers it.
type Reporter struct {
	now     func() time.Time
	storage service.Storage
	sender  service.ReportSender
	loc     *time.Location
}

// NewReporter creates a reporter. The sender may be nil for preview-only use.
func NewReporter(storage service.Storage, sender service.ReportSender, loc *time.Location) *Reporter {
	if loc == nil {
		loc = time.UTC
	}
	return &Reporter{now: time.Now, storage: storage, sender: sender, loc: loc}
}

// Build aggregates today's attendances against yesterday's volume.
func (r *Reporter) Build(ctx context.Context, period string) (*DailySummary, error) {
	if period == "" {
		period = DefaultPeriod
	}

	now := r.now().In(r.loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.loc)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	today, err := r.storage.GetAttendances(ctx, service.AttendanceFilter{Since: &todayStart})
	if err != nil {
		return nil, fmt.Errorf("failed to load today's attendances: %w", err)
	}

	yesterdayCount, err := r.storage.GetAttendanceCount(ctx, yesterdayStart, todayStart)
	if err != nil {
		return nil, fmt.Errorf("failed to count yesterday's attendances: %w", err)
	}

	summary := BuildDailySummary(period, now, today, yesterdayCount)
	return &summary, nil
}

// Send builds, renders and emails the report.
func (r *Reporter) Send(ctx context.Context, period string) (*DailySummary, error) {
	summary, err := r.Build(ctx, period)
	if err != nil {
		return nil, err
	}

	html, err := RenderHTML(summary)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("📊 Relatório de Atendimentos - %s (%d atendimentos)", summary.Period, summary.Total)
	if err := r.sender.Send(ctx, subject, html); err != nil {
		return nil, err
	}

	slog.Info("Report sent", "period", summary.Period, "total", summary.Total)
	return summary, nil
}
