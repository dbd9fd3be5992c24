package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sitegentech/atendo/internal/model"
)

// UpsertRankingEntries replaces the stored scores for each (agent, period,
// date) tuple in a single transaction.
func (s *SQLiteStorage) UpsertRankingEntries(ctx context.Context, entries []model.RankingEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rankings
			(agent_id, period, reference_date, points, tickets, avg_handle_min, achievements, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(agent_id, period, reference_date) DO UPDATE SET
			points = excluded.points,
			tickets = excluded.tickets,
			avg_handle_min = excluded.avg_handle_min,
			achievements = excluded.achievements,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare ranking upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	for i := range entries {
		entry := &entries[i]
		if entry.AgentID == "" || entry.ReferenceDate == "" {
			return fmt.Errorf("%w: ranking entry missing agent or date", ErrNilParameter)
		}

		achievements := entry.Achievements
		if achievements == nil {
			achievements = []string{}
		}
		payload, marshalErr := json.Marshal(achievements)
		if marshalErr != nil {
			return fmt.Errorf("failed to encode achievements: %w", marshalErr)
		}

		if _, execErr := stmt.ExecContext(ctx,
			entry.AgentID, model.ValidPeriod(string(entry.Period)), entry.ReferenceDate,
			entry.Points, entry.Tickets, entry.AvgHandleMin, string(payload), now); execErr != nil {
			return fmt.Errorf("failed to upsert ranking for %s: %w", entry.AgentID, execErr)
		}
		entry.UpdatedAt = now
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ranking upsert: %w", err)
	}
	return nil
}

// GetRanking returns the stored scores for a period and reference date,
// highest points first.
func (s *SQLiteStorage) GetRanking(ctx context.Context, period model.RankingPeriod, referenceDate string) ([]model.RankingEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(referenceDate, "referenceDate"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT agent_id, period, reference_date, points, tickets, avg_handle_min, achievements, updated_at
		FROM rankings
		WHERE period = ? AND reference_date = ?
		ORDER BY points DESC, tickets DESC, agent_id`,
		model.ValidPeriod(string(period)), referenceDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranking: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.RankingEntry
	for rows.Next() {
		var entry model.RankingEntry
		var achievements string
		if scanErr := rows.Scan(&entry.AgentID, &entry.Period, &entry.ReferenceDate,
			&entry.Points, &entry.Tickets, &entry.AvgHandleMin, &achievements, &entry.UpdatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan ranking entry: %w", scanErr)
		}
		if unmarshalErr := json.Unmarshal([]byte(achievements), &entry.Achievements); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to decode achievements for %s: %w", entry.AgentID, unmarshalErr)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ranking entries: %w", err)
	}
	return entries, nil
}
