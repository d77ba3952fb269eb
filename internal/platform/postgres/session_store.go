package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/platform/logger"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/store"
)

// uniqueActiveSessionConstraint is the partial unique index enforcing the
// at-most-one-ACTIVE-session-per-user invariant at the storage layer.
const uniqueActiveSessionConstraint = "recovery_sessions_one_active_per_user"

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the
// SessionStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

const sessionColumns = `
	id, user_id, mode, status, started_at, timer_reset_at,
	violation_count, completed_at, duration_seconds, created_at, updated_at
`

// scanSession scans one session row in sessionColumns order.
func scanSession(row interface{ Scan(...any) error }) (*domain.RecoverySession, error) {
	var session domain.RecoverySession
	var timerResetAt, completedAt sql.NullTime

	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Mode,
		&session.Status,
		&session.StartedAt,
		&timerResetAt,
		&session.ViolationCount,
		&completedAt,
		&session.DurationSeconds,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if timerResetAt.Valid {
		t := timerResetAt.Time
		session.TimerResetAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		session.CompletedAt = &t
	}

	return &session, nil
}

// GetActiveSession implements store.SessionStore.GetActiveSession
func (s *PostgresSessionStore) GetActiveSession(ctx context.Context, userID uuid.UUID) (*domain.RecoverySession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM recovery_sessions
		WHERE user_id = $1 AND status = $2
	`

	session, err := scanSession(s.db.QueryRowContext(ctx, query, userID, domain.SessionStatusActive))
	if err != nil {
		return nil, mapNoRows(fmt.Errorf("failed to get active session: %w", err), store.ErrNoActiveSession)
	}

	return session, nil
}

// GetByID implements store.SessionStore.GetByID
func (s *PostgresSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.RecoverySession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM recovery_sessions
		WHERE id = $1
	`

	session, err := scanSession(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapNoRows(fmt.Errorf("failed to get session: %w", err), store.ErrSessionNotFound)
	}

	return session, nil
}

// CreateSession implements store.SessionStore.CreateSession
func (s *PostgresSessionStore) CreateSession(ctx context.Context, session *domain.RecoverySession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO recovery_sessions (
			id, user_id, mode, status, started_at, violation_count,
			duration_seconds, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.Mode,
		session.Status,
		session.StartedAt,
		session.ViolationCount,
		session.DurationSeconds,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, uniqueActiveSessionConstraint) {
			log.Debug("active session already exists",
				"user_id", session.UserID)
			return store.ErrActiveSessionExists
		}
		log.Error("failed to create session",
			"user_id", session.UserID,
			"error", err)
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// RecordViolation implements store.SessionStore.RecordViolation
//
// The increment and the reset timestamp are applied in one UPDATE so the
// database serializes concurrent violations: counts are never lost and the
// reset point is last-writer-wins.
func (s *PostgresSessionStore) RecordViolation(ctx context.Context, sessionID uuid.UUID, at time.Time) (*domain.RecoverySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE recovery_sessions
		SET violation_count = violation_count + 1,
		    timer_reset_at = $1,
		    updated_at = $1
		WHERE id = $2 AND status = $3
		RETURNING ` + sessionColumns

	session, err := scanSession(s.db.QueryRowContext(ctx, query, at, sessionID, domain.SessionStatusActive))
	if err != nil {
		err = mapNoRows(fmt.Errorf("failed to record violation: %w", err), store.ErrSessionNotFound)
		if !store.IsNotFoundError(err) {
			log.Error("failed to record violation",
				"session_id", sessionID,
				"error", err)
		}
		return nil, err
	}

	return session, nil
}

// CompleteSession implements store.SessionStore.CompleteSession
func (s *PostgresSessionStore) CompleteSession(ctx context.Context, sessionID uuid.UUID, completedAt time.Time, durationSeconds int) error {
	return s.finishSession(ctx, sessionID, domain.SessionStatusCompleted, completedAt, durationSeconds)
}

// CancelSession implements store.SessionStore.CancelSession
func (s *PostgresSessionStore) CancelSession(ctx context.Context, sessionID uuid.UUID, at time.Time) error {
	return s.finishSession(ctx, sessionID, domain.SessionStatusCancelled, at, 0)
}

// finishSession moves an ACTIVE session into a terminal status.
func (s *PostgresSessionStore) finishSession(
	ctx context.Context,
	sessionID uuid.UUID,
	status domain.SessionStatus,
	at time.Time,
	durationSeconds int,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE recovery_sessions
		SET status = $1, completed_at = $2, duration_seconds = $3, updated_at = $2
		WHERE id = $4 AND status = $5
	`

	result, err := s.db.ExecContext(ctx, query,
		status,
		at,
		durationSeconds,
		sessionID,
		domain.SessionStatusActive,
	)
	if err != nil {
		log.Error("failed to finish session",
			"session_id", sessionID,
			"status", status,
			"error", err)
		return fmt.Errorf("failed to finish session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return store.ErrSessionNotFound
	}

	return nil
}

// ListStaleActiveSessions implements store.SessionStore.ListStaleActiveSessions
func (s *PostgresSessionStore) ListStaleActiveSessions(ctx context.Context, olderThan time.Duration, now time.Time) ([]*domain.RecoverySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + sessionColumns + `
		FROM recovery_sessions
		WHERE status = $1 AND COALESCE(timer_reset_at, started_at) < $2
		ORDER BY started_at ASC
	`

	cutoff := now.Add(-olderThan)

	rows, err := s.db.QueryContext(ctx, query, domain.SessionStatusActive, cutoff)
	if err != nil {
		log.Error("failed to list stale active sessions", "error", err)
		return nil, fmt.Errorf("failed to list stale active sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.RecoverySession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}

	return sessions, nil
}
