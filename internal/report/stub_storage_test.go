package report

import (
	"context"
	"time"

	"github.com/sitegentech/atendo/internal/common"
	"github.com/sitegentech/atendo/internal/model"
	"github.com/sitegentech/atendo/internal/service"
)

// stubStorage serves canned data for reporter tests.
type stubStorage struct {
	attendances []model.Attendance
	yesterday   int
}

func (s *stubStorage) SaveAttendance(context.Context, *model.Attendance) error   { return nil }
func (s *stubStorage) UpdateAttendance(context.Context, *model.Attendance) error { return nil }

func (s *stubStorage) GetOpenAttendanceByPhone(context.Context, string) (*model.Attendance, error) {
	return nil, common.ErrNotFound
}

func (s *stubStorage) GetAttendances(context.Context, service.AttendanceFilter) ([]model.Attendance, error) {
	return s.attendances, nil
}

func (s *stubStorage) GetAttendanceCount(context.Context, time.Time, time.Time) (int, error) {
	return s.yesterday, nil
}

func (s *stubStorage) GetAttendanceStartTimes(context.Context, time.Time) ([]time.Time, error) {
	return nil, nil
}

func (s *stubStorage) SaveTransfer(context.Context, *model.Transfer) error { return nil }

func (s *stubStorage) GetTransfers(context.Context, time.Time) ([]model.Transfer, error) {
	return nil, nil
}

func (s *stubStorage) UpsertAgentStatus(context.Context, *model.AgentStatus) error { return nil }

func (s *stubStorage) GetAgentStatuses(context.Context) ([]model.AgentStatus, error) {
	return nil, nil
}

func (s *stubStorage) UpsertRankingEntries(context.Context, []model.RankingEntry) error { return nil }

func (s *stubStorage) GetRanking(context.Context, model.RankingPeriod, string) ([]model.RankingEntry, error) {
	return nil, nil
}

func (s *stubStorage) UpsertForecast(context.Context, *model.Forecast) error { return nil }

func (s *stubStorage) GetForecast(context.Context, model.ForecastKind, string) (*model.Forecast, error) {
	return nil, common.ErrNotFound
}

func (s *stubStorage) SaveClassificationFeedback(context.Context, *model.ClassificationFeedback) error {
	return nil
}

func (s *stubStorage) GetClassificationFeedback(context.Context, time.Time) ([]model.ClassificationFeedback, error) {
	return nil, nil
}

func (s *stubStorage) Migrate(context.Context) error { return nil }
func (s *stubStorage) Close() error                  { return nil }
