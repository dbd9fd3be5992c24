package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 4

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema: attendances and transfers",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS attendances (
					id TEXT PRIMARY KEY,
					client_name TEXT NOT NULL,
					phone TEXT NOT NULL,
					agent_id TEXT NOT NULL,
					status TEXT NOT NULL,
					reason TEXT,
					origin TEXT NOT NULL DEFAULT 'receptivo',
					rating INTEGER,
					context TEXT,
					started_at DATETIME NOT NULL,
					ended_at DATETIME,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_attendances_phone_status ON attendances(phone, status)`,
				`CREATE INDEX idx_attendances_created_at ON attendances(created_at)`,

				`CREATE TABLE IF NOT EXISTS transfers (
					id TEXT PRIMARY KEY,
					from_agent TEXT NOT NULL,
					to_agent TEXT NOT NULL,
					client_phone TEXT NOT NULL,
					client_name TEXT,
					reason TEXT,
					note TEXT,
					transferred_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_transfers_transferred_at ON transfers(transferred_at)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Agent presence and gamification ranking",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS agent_status (
					agent_id TEXT PRIMARY KEY,
					online BOOLEAN NOT NULL DEFAULT 0,
					last_seen DATETIME NOT NULL,
					chats_snapshot TEXT NOT NULL DEFAULT '[]',
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_agent_status_last_seen ON agent_status(last_seen)`,

				`CREATE TABLE IF NOT EXISTS rankings (
					agent_id TEXT NOT NULL,
					period TEXT NOT NULL,
					reference_date TEXT NOT NULL,
					points INTEGER NOT NULL DEFAULT 0,
					tickets INTEGER NOT NULL DEFAULT 0,
					avg_handle_min INTEGER NOT NULL DEFAULT 0,
					achievements TEXT NOT NULL DEFAULT '[]',
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (agent_id, period, reference_date)
				)`,
				`CREATE INDEX idx_rankings_period_date ON rankings(period, reference_date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Demand forecasts",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS forecasts (
					kind TEXT NOT NULL,
					reference_date TEXT NOT NULL,
					payload TEXT NOT NULL,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (kind, reference_date)
				)
			`)
			return err
		},
	},
	{
		Version:     4,
		Description: "Classification feedback log for rule tuning",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS classification_feedback (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					suggested TEXT NOT NULL,
					chosen TEXT NOT NULL,
					context TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_classification_feedback_created_at ON classification_feedback(created_at)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion reports the schema version the database currently sits at.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
