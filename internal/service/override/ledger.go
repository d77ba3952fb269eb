// Package override implements the override ledger: the scarce, decaying
// allowance that lets a user deliberately bypass a LOCKED gating decision,
// at the cost of a temporary capacity penalty.
package override

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain/engine"
)

// Ledger governs how many times per day and per ISO week a user may bypass
// a LOCKED gating decision.
type Ledger interface {
	// Allowance computes the current override allowance from the record log.
	Allowance(ctx context.Context, userID uuid.UUID) (engine.Allowance, error)

	// WasOverriddenToday reports whether the given task was already
	// overridden today. A locked item may be overridden at most once per
	// day regardless of the remaining allowance.
	WasOverriddenToday(ctx context.Context, userID uuid.UUID, taskID string) (bool, error)

	// RecordOverride appends a new override after re-checking the allowance
	// at call time; the caller's own earlier check is never trusted.
	// Returns ErrOverrideLimit when the daily or weekly cap is exhausted or
	// the task was already overridden today.
	RecordOverride(ctx context.Context, userID uuid.UUID, taskID string, category domain.Category) (*domain.OverrideRecord, error)

	// AdjustedCapacity applies the post-override penalty to the snapshot's
	// reasoning capacity for the remainder of the day. The penalty decays
	// automatically at the next day boundary because it is recomputed from
	// the log, never stored.
	AdjustedCapacity(ctx context.Context, userID uuid.UUID, snapshot domain.CognitiveSnapshot) (float64, error)
}

// Common error types for the override ledger.
var (
	// ErrOverrideLimit indicates the daily or weekly override cap is
	// exhausted, or the item was already overridden today. Recoverable:
	// surfaced as a disabled action with a reason string.
	ErrOverrideLimit = errors.New("override limit reached")
)

// ServiceError wraps errors from the override ledger with additional context.
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
