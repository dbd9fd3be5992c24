package gamify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sitegentech/atendo/internal/model"
	"github.com/sitegentech/atendo/internal/service"
)

// Syncer recomputes and persists a ranking period.
type Syncer struct {
	storage    service.Storage
	calculator *Calculator
}

// NewSyncer creates a ranking syncer.
func NewSyncer(storage service.Storage, calculator *Calculator) *Syncer {
	return &Syncer{storage: storage, calculator: calculator}
}

// Sync recomputes the ranking for one period from raw attendances and upserts
// the result.
func (s *Syncer) Sync(ctx context.Context, period model.RankingPeriod) error {
	since := s.calculator.PeriodStart(period)

	attendances, err := s.storage.GetAttendances(ctx, service.AttendanceFilter{Since: &since})
	if err != nil {
		return fmt.Errorf("failed to load attendances for ranking: %w", err)
	}

	entries := s.calculator.Compute(period, attendances)
	if len(entries) == 0 {
		return nil
	}

	if err := s.storage.UpsertRankingEntries(ctx, entries); err != nil {
		return fmt.Errorf("failed to persist ranking: %w", err)
	}

	slog.Info("Ranking synced",
		"period", period,
		"reference_date", s.calculator.ReferenceDate(),
		"agents", len(entries))
	return nil
}

// Get returns the stored ranking for a period, for today's reference date.
func (s *Syncer) Get(ctx context.Context, period model.RankingPeriod) ([]model.RankingEntry, error) {
	return s.storage.GetRanking(ctx, period, s.calculator.ReferenceDate())
}
