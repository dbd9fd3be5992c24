package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sitegentech/atendo/internal/model"
)

// SaveClassificationFeedback appends one suggestion/choice pair to the
// feedback log.
func (s *SQLiteStorage) SaveClassificationFeedback(ctx context.Context, fb *model.ClassificationFeedback) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if fb == nil {
		return fmt.Errorf("%w: feedback", ErrNilParameter)
	}
	if err := validateString(fb.Chosen, "chosen"); err != nil {
		return err
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO classification_feedback (suggested, chosen, context, created_at)
		VALUES (?, ?, ?, ?)`,
		fb.Suggested, fb.Chosen, nullString(fb.Context), now)
	if err != nil {
		return fmt.Errorf("failed to save classification feedback: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get feedback ID: %w", err)
	}

	fb.ID = id
	fb.CreatedAt = now
	return nil
}

// GetClassificationFeedback returns feedback logged since the given time,
// newest first.
func (s *SQLiteStorage) GetClassificationFeedback(ctx context.Context, since time.Time) ([]model.ClassificationFeedback, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, suggested, chosen, context, created_at
		FROM classification_feedback
		WHERE created_at >= ?
		ORDER BY created_at DESC, id DESC`,
		since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query classification feedback: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var feedback []model.ClassificationFeedback
	for rows.Next() {
		var fb model.ClassificationFeedback
		var fbContext sql.NullString
		if scanErr := rows.Scan(&fb.ID, &fb.Suggested, &fb.Chosen, &fbContext, &fb.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", scanErr)
		}
		fb.Context = fbContext.String
		feedback = append(feedback, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback: %w", err)
	}
	return feedback, nil
}
