package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/sitegentech/atendo/internal/common"
	"github.com/sitegentech/atendo/internal/model"
	"github.com/sitegentech/atendo/internal/service"
)

// SaveAttendance inserts a new attendance record.
func (s *SQLiteStorage) SaveAttendance(ctx context.Context, att *model.Attendance) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAttendance(att); err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendances
			(id, client_name, phone, agent_id, status, reason, origin, rating, context, started_at, ended_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		att.ID, att.ClientName, att.Phone, att.AgentID, att.Status,
		nullString(att.Reason), model.ValidOrigin(att.Origin), nullIntPtr(att.Rating),
		nullString(att.Context), att.StartedAt.UTC(), nullTimePtr(att.EndedAt), now, now)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("attendance %s: %w", att.ID, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to save attendance: %w", err)
	}

	att.CreatedAt = now
	att.UpdatedAt = now
	return nil
}

// UpdateAttendance persists the mutable fields of an existing attendance.
func (s *SQLiteStorage) UpdateAttendance(ctx context.Context, att *model.Attendance) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAttendance(att); err != nil {
		return err
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE attendances
		SET status = ?, reason = ?, origin = ?, rating = ?, context = ?, ended_at = ?, updated_at = ?
		WHERE id = ?`,
		att.Status, nullString(att.Reason), model.ValidOrigin(att.Origin),
		nullIntPtr(att.Rating), nullString(att.Context), nullTimePtr(att.EndedAt), now, att.ID)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}

	att.UpdatedAt = now
	return nil
}

// GetOpenAttendanceByPhone returns the most recent in-progress attendance for
// a phone number, or common.ErrNotFound when none is open.
func (s *SQLiteStorage) GetOpenAttendanceByPhone(ctx context.Context, phone string) (*model.Attendance, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(phone, "phone"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, client_name, phone, agent_id, status, reason, origin, rating, context,
		       started_at, ended_at, created_at, updated_at
		FROM attendances
		WHERE phone = ? AND status = ?
		ORDER BY created_at DESC
		LIMIT 1`,
		phone, model.StatusInProgress)

	att, err := scanAttendance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open attendance: %w", err)
	}
	return att, nil
}

// GetAttendances returns attendance records matching the filter, newest first.
func (s *SQLiteStorage) GetAttendances(ctx context.Context, filter service.AttendanceFilter) ([]model.Attendance, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, client_name, phone, agent_id, status, reason, origin, rating, context,
		       started_at, ended_at, created_at, updated_at
		FROM attendances
		WHERE 1=1`
	args := make([]any, 0, 5)

	if filter.Since != nil {
		query += " AND created_at >= ?"
		args = append(args, filter.Since.UTC())
	}
	if filter.Until != nil {
		query += " AND created_at <= ?"
		args = append(args, filter.Until.UTC())
	}
	if filter.AgentID != "" {
		query += " AND agent_id = ?"
		args = append(args, filter.AgentID)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var attendances []model.Attendance
	for rows.Next() {
		att, scanErr := scanAttendance(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", scanErr)
		}
		attendances = append(attendances, *att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return attendances, nil
}

// GetAttendanceCount returns the number of attendances created in [since, until).
func (s *SQLiteStorage) GetAttendanceCount(ctx context.Context, since, until time.Time) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM attendances
		WHERE created_at >= ? AND created_at < ?`,
		since.UTC(), until.UTC()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendances: %w", err)
	}
	return count, nil
}

// GetAttendanceStartTimes returns the creation timestamps of all attendances
// since the given time, for demand forecasting.
func (s *SQLiteStorage) GetAttendanceStartTimes(ctx context.Context, since time.Time) ([]time.Time, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT created_at FROM attendances WHERE created_at >= ?`,
		since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance start times: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if scanErr := rows.Scan(&t); scanErr != nil {
			return nil, fmt.Errorf("failed to scan start time: %w", scanErr)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate start times: %w", err)
	}
	return times, nil
}

// scanner abstracts sql.Row and sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanAttendance(row scanner) (*model.Attendance, error) {
	var att model.Attendance
	var reason, attContext sql.NullString
	var rating sql.NullInt64
	var endedAt sql.NullTime

	err := row.Scan(&att.ID, &att.ClientName, &att.Phone, &att.AgentID, &att.Status,
		&reason, &att.Origin, &rating, &attContext,
		&att.StartedAt, &endedAt, &att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		return nil, err
	}

	att.Reason = reason.String
	att.Context = attContext.String
	if rating.Valid {
		r := int(rating.Int64)
		att.Rating = &r
	}
	if endedAt.Valid {
		t := endedAt.Time
		att.EndedAt = &t
	}
	return &att, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullIntPtr(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
