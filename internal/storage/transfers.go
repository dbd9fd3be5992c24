package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sitegentech/atendo/internal/model"
)

// SaveTransfer appends a transfer record.
func (s *SQLiteStorage) SaveTransfer(ctx context.Context, transfer *model.Transfer) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransfer(transfer); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transfers
			(id, from_agent, to_agent, client_phone, client_name, reason, note, transferred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		transfer.ID, transfer.FromAgent, transfer.ToAgent, transfer.ClientPhone,
		nullString(transfer.ClientName), nullString(transfer.Reason),
		nullString(transfer.Note), transfer.TransferredAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save transfer: %w", err)
	}
	return nil
}

// GetTransfers returns all transfers since the given time, newest first.
func (s *SQLiteStorage) GetTransfers(ctx context.Context, since time.Time) ([]model.Transfer, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, from_agent, to_agent, client_phone, client_name, reason, note, transferred_at
		FROM transfers
		WHERE transferred_at >= ?
		ORDER BY transferred_at DESC`,
		since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transfers []model.Transfer
	for rows.Next() {
		var t model.Transfer
		var clientName, reason, note sql.NullString
		if scanErr := rows.Scan(&t.ID, &t.FromAgent, &t.ToAgent, &t.ClientPhone,
			&clientName, &reason, &note, &t.TransferredAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", scanErr)
		}
		t.ClientName = clientName.String
		t.Reason = reason.String
		t.Note = note.String
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfers: %w", err)
	}
	return transfers, nil
}
