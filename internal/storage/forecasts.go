package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sitegentech/atendo/internal/common"
	"github.com/sitegentech/atendo/internal/model"
)

// UpsertForecast stores a demand projection, replacing any existing one for
// the same kind and reference date.
func (s *SQLiteStorage) UpsertForecast(ctx context.Context, forecast *model.Forecast) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if forecast == nil {
		return fmt.Errorf("%w: forecast", ErrNilParameter)
	}
	if err := validateString(forecast.ReferenceDate, "referenceDate"); err != nil {
		return err
	}
	if len(forecast.Payload) == 0 {
		return fmt.Errorf("%w: forecast payload", ErrEmptyString)
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO forecasts (kind, reference_date, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(kind, reference_date) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		model.ValidForecastKind(string(forecast.Kind)), forecast.ReferenceDate,
		string(forecast.Payload), now)
	if err != nil {
		return fmt.Errorf("failed to upsert forecast: %w", err)
	}

	forecast.UpdatedAt = now
	return nil
}

// GetForecast returns the stored projection for a kind and reference date,
// or common.ErrNotFound when none has been generated yet.
func (s *SQLiteStorage) GetForecast(ctx context.Context, kind model.ForecastKind, referenceDate string) (*model.Forecast, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(referenceDate, "referenceDate"); err != nil {
		return nil, err
	}

	var forecast model.Forecast
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT kind, reference_date, payload, updated_at
		FROM forecasts
		WHERE kind = ? AND reference_date = ?`,
		model.ValidForecastKind(string(kind)), referenceDate).
		Scan(&forecast.Kind, &forecast.ReferenceDate, &payload, &forecast.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get forecast: %w", err)
	}

	forecast.Payload = []byte(payload)
	return &forecast, nil
}
