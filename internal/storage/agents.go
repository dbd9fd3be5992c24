package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sitegentech/atendo/internal/model"
)

// UpsertAgentStatus writes the latest heartbeat for an agent, replacing any
// previous state.
func (s *SQLiteStorage) UpsertAgentStatus(ctx context.Context, status *model.AgentStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAgentStatus(status); err != nil {
		return err
	}

	snapshot := status.ChatsSnapshot
	if snapshot == nil {
		snapshot = []model.ChatSnapshot{}
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode chats snapshot: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO agent_status (agent_id, online, last_seen, chats_snapshot, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(agent_id) DO UPDATE SET
			online = excluded.online,
			last_seen = excluded.last_seen,
			chats_snapshot = excluded.chats_snapshot,
			updated_at = excluded.updated_at`,
		status.AgentID, status.Online, status.LastSeen.UTC(), string(payload), now)
	if err != nil {
		return fmt.Errorf("failed to upsert agent status: %w", err)
	}

	status.UpdatedAt = now
	return nil
}

// GetAgentStatuses returns the last known state of every agent.
func (s *SQLiteStorage) GetAgentStatuses(ctx context.Context) ([]model.AgentStatus, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT agent_id, online, last_seen, chats_snapshot, updated_at
		FROM agent_status
		ORDER BY agent_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query agent statuses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var statuses []model.AgentStatus
	for rows.Next() {
		var status model.AgentStatus
		var snapshot string
		if scanErr := rows.Scan(&status.AgentID, &status.Online, &status.LastSeen,
			&snapshot, &status.UpdatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan agent status: %w", scanErr)
		}
		if unmarshalErr := json.Unmarshal([]byte(snapshot), &status.ChatsSnapshot); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to decode chats snapshot for %s: %w", status.AgentID, unmarshalErr)
		}
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate agent statuses: %w", err)
	}
	return statuses, nil
}
