// Package progress computes the weekly XP progress snapshot: per-category
// capped progress plus the whole-week total, derived fresh from the XP event
// log on every refresh.
package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
)

// WeeklyProgress is the display-ready snapshot for one user's current ISO week.
type WeeklyProgress struct {
	UserID     uuid.UUID               `json:"user_id"`
	WeekStart  time.Time               `json:"week_start"`
	Categories []domain.CappedProgress `json:"categories"`
	Total      domain.CappedProgress   `json:"total"`
	// CelebrationPending is true exactly once per week: the refresh that
	// first observes a complete total sets it, later refreshes read it back
	// as false once MarkCelebrated has run.
	CelebrationPending bool      `json:"celebration_pending"`
	ComputedAt         time.Time `json:"computed_at"`
}

// Service exposes the weekly progress snapshot.
type Service interface {
	// Progress returns the current week's progress. When a refresh fails and
	// a previous snapshot for the same week exists, the stale snapshot is
	// returned instead of an error so callers never render zeroed data.
	Progress(ctx context.Context, userID uuid.UUID) (*WeeklyProgress, error)

	// Invalidate drops the cached snapshot so the next Progress call
	// recomputes from the store.
	Invalidate(userID uuid.UUID)

	// MarkCelebrated records that the weekly completion celebration was
	// shown, silencing CelebrationPending for the rest of the ISO week.
	MarkCelebrated(ctx context.Context, userID uuid.UUID) error
}

// Common error types for the progress service.
var (
	// ErrNoPlan indicates the user has no training plan assigned, so no
	// progress can be computed.
	ErrNoPlan = errors.New("no training plan assigned")
)

// ServiceError wraps errors from the progress service with additional context.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
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
