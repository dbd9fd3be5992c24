package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sitegentech/atendo/internal/common"
	"github.com/sitegentech/atendo/internal/model"
)

func TestSQLiteStorage_SaveTransfer(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	transfer := &model.Transfer{
		ID:            "tr-001",
		FromAgent:     "Maria",
		ToAgent:       "Joao",
		ClientPhone:   "5511999000001",
		ClientName:    "Posto Central",
		Reason:        "Gerente",
		TransferredAt: time.Now().UTC(),
	}
	if err := store.SaveTransfer(ctx, transfer); err != nil {
		t.Fatalf("SaveTransfer() error = %v", err)
	}

	transfers, err := store.GetTransfers(ctx, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("GetTransfers() error = %v", err)
	}
	if len(transfers) != 1 {
		t.Fatalf("Expected 1 transfer, got %d", len(transfers))
	}
	if transfers[0].ToAgent != "Joao" {
		t.Errorf("Expected to_agent Joao, got %s", transfers[0].ToAgent)
	}

	// Missing agents must be rejected.
	bad := &model.Transfer{ID: "tr-002", ClientPhone: "5511999000002", TransferredAt: time.Now()}
	if err := store.SaveTransfer(ctx, bad); err == nil {
		t.Error("Expected error for transfer without agents")
	}
}

func TestSQLiteStorage_UpsertAgentStatus(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	status := &model.AgentStatus{
		AgentID:  "Maria",
		Online:   true,
		LastSeen: time.Now().UTC(),
		ChatsSnapshot: []model.ChatSnapshot{
			{Client: "Posto Central", Pending: 2},
		},
	}
	if err := store.UpsertAgentStatus(ctx, status); err != nil {
		t.Fatalf("UpsertAgentStatus() error = %v", err)
	}

	// Second heartbeat replaces the first.
	status.ChatsSnapshot = nil
	status.Online = false
	if err := store.UpsertAgentStatus(ctx, status); err != nil {
		t.Fatalf("UpsertAgentStatus() second call error = %v", err)
	}

	statuses, err := store.GetAgentStatuses(ctx)
	if err != nil {
		t.Fatalf("GetAgentStatuses() error = %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("Expected 1 agent status, got %d", len(statuses))
	}
	if statuses[0].Online {
		t.Error("Expected agent to be offline after second heartbeat")
	}
	if len(statuses[0].ChatsSnapshot) != 0 {
		t.Errorf("Expected empty snapshot, got %v", statuses[0].ChatsSnapshot)
	}
}

func TestSQLiteStorage_UpsertRankingEntries(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	entries := []model.RankingEntry{
		{
			AgentID:       "Maria",
			Period:        model.PeriodToday,
			ReferenceDate: "2026-08-28",
			Points:        120,
			Tickets:       8,
			AvgHandleMin:  12,
			Achievements:  []string{"🔥 On Fire"},
		},
		{
			AgentID:       "Joao",
			Period:        model.PeriodToday,
			ReferenceDate: "2026-08-28",
			Points:        95,
			Tickets:       6,
			AvgHandleMin:  18,
		},
	}
	if err := store.UpsertRankingEntries(ctx, entries); err != nil {
		t.Fatalf("UpsertRankingEntries() error = %v", err)
	}

	// Re-upserting with new points overwrites instead of duplicating.
	entries[1].Points = 140
	if err := store.UpsertRankingEntries(ctx, entries); err != nil {
		t.Fatalf("UpsertRankingEntries() second call error = %v", err)
	}

	ranking, err := store.GetRanking(ctx, model.PeriodToday, "2026-08-28")
	if err != nil {
		t.Fatalf("GetRanking() error = %v", err)
	}
	if len(ranking) != 2 {
		t.Fatalf("Expected 2 ranking entries, got %d", len(ranking))
	}
	if ranking[0].AgentID != "Joao" || ranking[0].Points != 140 {
		t.Errorf("Expected Joao first with 140 points, got %s with %d", ranking[0].AgentID, ranking[0].Points)
	}
	if len(ranking[1].Achievements) != 1 || ranking[1].Achievements[0] != "🔥 On Fire" {
		t.Errorf("Expected achievement round trip, got %v", ranking[1].Achievements)
	}
}

func TestSQLiteStorage_GetRanking_EmptyPeriod(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	ranking, err := store.GetRanking(ctx, model.PeriodWeek, "2026-W35")
	if err != nil {
		t.Fatalf("GetRanking() error = %v", err)
	}
	if len(ranking) != 0 {
		t.Errorf("Expected empty ranking, got %d entries", len(ranking))
	}
}

func TestSQLiteStorage_Forecasts(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.GetForecast(ctx, model.ForecastHourly, "2026-08-28")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound before upsert, got %v", err)
	}

	forecast := &model.Forecast{
		Kind:          model.ForecastHourly,
		ReferenceDate: "2026-08-28",
		Payload:       []byte(`{"proximas_horas":[]}`),
	}
	if err := store.UpsertForecast(ctx, forecast); err != nil {
		t.Fatalf("UpsertForecast() error = %v", err)
	}

	forecast.Payload = []byte(`{"proximas_horas":[{"hora":"14:00","volume_esperado":12,"is_pico":true}]}`)
	if err := store.UpsertForecast(ctx, forecast); err != nil {
		t.Fatalf("UpsertForecast() second call error = %v", err)
	}

	got, err := store.GetForecast(ctx, model.ForecastHourly, "2026-08-28")
	if err != nil {
		t.Fatalf("GetForecast() error = %v", err)
	}
	if string(got.Payload) != string(forecast.Payload) {
		t.Errorf("Expected latest payload, got %s", got.Payload)
	}
}

func TestSQLiteStorage_ClassificationFeedback(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	fb := &model.ClassificationFeedback{
		Suggested: "PDV",
		Chosen:    "PINPAD",
		Context:   "cliente com problema no pinpad do caixa",
	}
	if err := store.SaveClassificationFeedback(ctx, fb); err != nil {
		t.Fatalf("SaveClassificationFeedback() error = %v", err)
	}
	if fb.ID == 0 {
		t.Error("Expected feedback ID to be assigned")
	}

	feedback, err := store.GetClassificationFeedback(ctx, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("GetClassificationFeedback() error = %v", err)
	}
	if len(feedback) != 1 {
		t.Fatalf("Expected 1 feedback entry, got %d", len(feedback))
	}
	if feedback[0].Chosen != "PINPAD" {
		t.Errorf("Expected chosen PINPAD, got %s", feedback[0].Chosen)
	}

	// Chosen category is mandatory.
	if err := store.SaveClassificationFeedback(ctx, &model.ClassificationFeedback{Suggested: "PDV"}); err == nil {
		t.Error("Expected error for feedback without chosen category")
	}
}
