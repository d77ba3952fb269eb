package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
)

// SessionStore defines the interface for recovery session persistence.
//
// The at-most-one-ACTIVE-session-per-user invariant is enforced at this
// layer with a partial unique index; callers can rely on CreateSession
// failing with ErrActiveSessionExists under concurrent starts rather than
// deduplicating themselves.
type SessionStore interface {
	// GetActiveSession retrieves the user's single ACTIVE session.
	// Returns ErrNoActiveSession when none exists.
	GetActiveSession(ctx context.Context, userID uuid.UUID) (*domain.RecoverySession, error)

	// GetByID retrieves a session by its unique ID.
	// Returns ErrSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RecoverySession, error)

	// CreateSession persists a new ACTIVE session.
	// Returns ErrActiveSessionExists when the user already has an ACTIVE
	// session, including under concurrent calls.
	CreateSession(ctx context.Context, session *domain.RecoverySession) error

	// RecordViolation atomically increments the session's violation count
	// and moves its timer reset point to the given instant. The increment
	// happens in a single statement so near-simultaneous violations are
	// serialized by the database and no increment is lost; the reset
	// timestamp is last-writer-wins. Returns the updated session, or
	// ErrSessionNotFound if the session does not exist or is not ACTIVE.
	RecordViolation(ctx context.Context, sessionID uuid.UUID, at time.Time) (*domain.RecoverySession, error)

	// CompleteSession transitions an ACTIVE session to COMPLETED, recording
	// the completion instant and the final duration in seconds.
	// Returns ErrSessionNotFound if the session does not exist or is not ACTIVE.
	CompleteSession(ctx context.Context, sessionID uuid.UUID, completedAt time.Time, durationSeconds int) error

	// CancelSession transitions an ACTIVE session to CANCELLED.
	// Returns ErrSessionNotFound if the session does not exist or is not ACTIVE.
	CancelSession(ctx context.Context, sessionID uuid.UUID, at time.Time) error

	// ListStaleActiveSessions returns ACTIVE sessions whose elapsed time,
	// measured from the most recent timer reset, exceeds olderThan. Used by
	// the background sweeper to cancel abandoned sessions.
	ListStaleActiveSessions(ctx context.Context, olderThan time.Duration, now time.Time) ([]*domain.RecoverySession, error)
}
