package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session-specific validation errors.
var (
	// ErrSessionIDEmpty is returned when a session ID is empty or nil.
	ErrSessionIDEmpty = errors.New("session ID cannot be empty")

	// ErrSessionUserIDEmpty is returned when a session's user ID is empty or nil.
	ErrSessionUserIDEmpty = errors.New("session user ID cannot be empty")

	// ErrSessionResetBeforeStart is returned when a session's timer reset
	// timestamp precedes its start timestamp.
	ErrSessionResetBeforeStart = errors.New("session timer reset cannot precede start")
)

// SessionMode identifies the kind of recovery activity a session tracks.
type SessionMode string

// Known session modes.
const (
	// SessionModeDetox is a digital-detox session away from screens.
	SessionModeDetox SessionMode = "DETOX"

	// SessionModeWalk is a walking session.
	SessionModeWalk SessionMode = "WALK"
)

// IsValid reports whether the mode is a known session mode.
func (m SessionMode) IsValid() bool {
	switch m {
	case SessionModeDetox, SessionModeWalk:
		return true
	default:
		return false
	}
}

// SessionStatus is the lifecycle state of a recovery session.
type SessionStatus string

// Known session statuses.
const (
	SessionStatusActive    SessionStatus = "ACTIVE"
	SessionStatusCompleted SessionStatus = "COMPLETED"
	SessionStatusCancelled SessionStatus = "CANCELLED"
)

// IsValid reports whether the status is a known session status.
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusActive, SessionStatusCompleted, SessionStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status is a final lifecycle state.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusCancelled
}

// RecoverySession is a single timed recovery session. At most one ACTIVE
// session may exist per user at a time; the session store enforces this with
// a unique constraint and the manager validates it on start.
type RecoverySession struct {
	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"user_id"`
	Mode           SessionMode   `json:"mode"`
	Status         SessionStatus `json:"status"`
	StartedAt      time.Time     `json:"started_at"`
	TimerResetAt   *time.Time    `json:"timer_reset_at,omitempty"`
	ViolationCount int           `json:"violation_count"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty"`
	// DurationSeconds is the final recorded duration, measured from the most
	// recent timer reset rather than wall-clock since start. Zero until the
	// session completes.
	DurationSeconds int       `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewRecoverySession creates a new ACTIVE RecoverySession for the given user
// and mode, started at the given instant. Returns an error if validation fails.
func NewRecoverySession(userID uuid.UUID, mode SessionMode, startedAt time.Time) (*RecoverySession, error) {
	session := &RecoverySession{
		ID:        uuid.New(),
		UserID:    userID,
		Mode:      mode,
		Status:    SessionStatusActive,
		StartedAt: startedAt.UTC(),
		CreatedAt: startedAt.UTC(),
		UpdatedAt: startedAt.UTC(),
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the RecoverySession has valid data.
// Returns an error if any field fails validation.
func (s *RecoverySession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.UserID == uuid.Nil {
		return ErrSessionUserIDEmpty
	}

	if !s.Mode.IsValid() {
		return ErrInvalidSessionMode
	}

	if !s.Status.IsValid() {
		return ErrInvalidSessionStatus
	}

	if s.TimerResetAt != nil && s.TimerResetAt.Before(s.StartedAt) {
		return ErrSessionResetBeforeStart
	}

	return nil
}

// ElapsedSeconds returns the number of whole seconds counted toward
// completion at instant now. Elapsed time is measured from the most recent
// timer reset when one exists, otherwise from the session start. Calling it
// never mutates the session.
func (s *RecoverySession) ElapsedSeconds(now time.Time) int {
	base := s.StartedAt
	if s.TimerResetAt != nil {
		base = *s.TimerResetAt
	}

	elapsed := now.Sub(base)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / time.Second)
}
