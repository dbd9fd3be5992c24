package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sitegentech/atendo/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrInvalidAttendance = errors.New("invalid attendance")
	ErrInvalidTransfer   = errors.New("invalid transfer")
	ErrInvalidStatus     = errors.New("invalid agent status")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateAttendance validates a single attendance record.
func validateAttendance(att *model.Attendance) error {
	if att == nil {
		return fmt.Errorf("%w: attendance", ErrNilParameter)
	}
	if att.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidAttendance)
	}
	if att.Phone == "" {
		return fmt.Errorf("%w: missing phone", ErrInvalidAttendance)
	}
	if att.AgentID == "" {
		return fmt.Errorf("%w: missing agent ID", ErrInvalidAttendance)
	}
	if att.StartedAt.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidAttendance)
	}
	return nil
}

// validateTransfer validates a transfer record.
func validateTransfer(transfer *model.Transfer) error {
	if transfer == nil {
		return fmt.Errorf("%w: transfer", ErrNilParameter)
	}
	if transfer.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransfer)
	}
	if transfer.FromAgent == "" || transfer.ToAgent == "" {
		return fmt.Errorf("%w: missing agents", ErrInvalidTransfer)
	}
	if transfer.ClientPhone == "" {
		return fmt.Errorf("%w: missing client phone", ErrInvalidTransfer)
	}
	return nil
}

// validateAgentStatus validates an agent presence record.
func validateAgentStatus(status *model.AgentStatus) error {
	if status == nil {
		return fmt.Errorf("%w: agent status", ErrNilParameter)
	}
	if status.AgentID == "" {
		return fmt.Errorf("%w: missing agent ID", ErrInvalidStatus)
	}
	if status.LastSeen.IsZero() {
		return fmt.Errorf("%w: missing last seen", ErrInvalidStatus)
	}
	return nil
}
