package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sitegentech/atendo/internal/common"
	"github.com/sitegentech/atendo/internal/model"
	"github.com/sitegentech/atendo/internal/service"
)

// ErrNoHistory means there were no attendances in the analysis window.
var ErrNoHistory = errors.New("not enough history for a forecast")

// Generator builds and persists demand forecasts.
type Generator struct {
	storage service.Storage
	builder *Builder
}

// NewGenerator creates a forecast generator.
func NewGenerator(storage service.Storage, builder *Builder) *Generator {
	return &Generator{storage: storage, builder: builder}
}

// Generate builds a forecast of the given kind from stored attendance start
// times and upserts it under today's reference date.
func (g *Generator) Generate(ctx context.Context, kind model.ForecastKind) (*model.Forecast, error) {
	kind = model.ValidForecastKind(string(kind))

	starts, err := g.storage.GetAttendanceStartTimes(ctx, g.builder.WindowStart(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance history: %w", err)
	}
	if len(starts) == 0 {
		return nil, ErrNoHistory
	}

	var payload any
	if kind == model.ForecastWeekly {
		payload = g.builder.Weekly(starts)
	} else {
		payload = g.builder.Hourly(starts)
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode forecast: %w", err)
	}

	forecast := &model.Forecast{
		Kind:          kind,
		ReferenceDate: g.builder.ReferenceDate(),
		Payload:       encoded,
	}
	if err := g.storage.UpsertForecast(ctx, forecast); err != nil {
		return nil, fmt.Errorf("failed to persist forecast: %w", err)
	}

	slog.Info("Forecast generated",
		"kind", kind,
		"reference_date", forecast.ReferenceDate,
		"samples", len(starts))
	return forecast, nil
}

// Latest returns today's stored forecast, generating it when missing.
func (g *Generator) Latest(ctx context.Context, kind model.ForecastKind) (*model.Forecast, error) {
	kind = model.ValidForecastKind(string(kind))

	forecast, err := g.storage.GetForecast(ctx, kind, g.builder.ReferenceDate())
	if err == nil {
		return forecast, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	return g.Generate(ctx, kind)
}
