// Package session implements the recovery session manager: the lifecycle of
// a single timed recovery session, including violation-triggered timer
// resets and minimum-duration completion gating.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
)

// Manager owns the lifecycle of recovery sessions. The state machine is
// NoSession -> Active -> {Completed, Cancelled}, with violations looping
// Active -> Active while resetting the completion timer.
type Manager interface {
	// Start begins a new recovery session for the user.
	//
	// Returns ErrAlreadyActive when an ACTIVE session already exists:
	// starting over a live session is an error, never a silent replace.
	Start(ctx context.Context, userID uuid.UUID, mode domain.SessionMode) (*domain.RecoverySession, error)

	// Active returns the user's current ACTIVE session, or ErrNoActiveSession.
	// Polling it never mutates any state.
	Active(ctx context.Context, userID uuid.UUID) (*domain.RecoverySession, error)

	// ReportViolation registers that the user left the guarded context. The
	// violation count increments and the completion timer restarts from now;
	// the count stays visible so the UI can show how many times it happened.
	// Invoked by the external app-usage monitor.
	ReportViolation(ctx context.Context, userID uuid.UUID) (*domain.RecoverySession, error)

	// Complete finishes the ACTIVE session. Returns ErrSessionTooShort when
	// the time elapsed since the most recent reset is below the configured
	// minimum duration; the user can simply wait and retry. On success the
	// final recorded duration is the elapsed time at the moment of
	// completion, not wall clock since start.
	Complete(ctx context.Context, userID uuid.UUID) (*domain.RecoverySession, error)

	// Cancel abandons the ACTIVE session. Always permitted from Active; the
	// session's accumulated XP is discarded (no XP event is written).
	Cancel(ctx context.Context, userID uuid.UUID) error
}

// Common error types for the session manager.
var (
	// ErrAlreadyActive indicates a session start while one is already ACTIVE.
	ErrAlreadyActive = errors.New("a recovery session is already active")

	// ErrSessionTooShort indicates a completion attempt before the minimum
	// duration has elapsed since the most recent timer reset.
	ErrSessionTooShort = errors.New("recovery session is too short to complete")

	// ErrNoActiveSession indicates that the user has no ACTIVE session.
	ErrNoActiveSession = errors.New("no active recovery session")
)

// ServiceError wraps errors from the session manager with additional
// context, so consumers can differentiate failures with errors.As instead
// of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g. "start", "complete").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

func newServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
