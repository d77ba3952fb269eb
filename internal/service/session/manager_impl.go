package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain/engine"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/platform/logger"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/store"
)

// manager is the store-backed implementation of Manager.
type manager struct {
	sessions store.SessionStore
	xp       store.XPStore
	params   *engine.Params
	logger   *slog.Logger
	// now is the injected time source. Reading it never mutates session
	// state; only the explicit transitions do.
	now func() time.Time
}

// Config holds the dependencies for NewManager.
type Config struct {
	SessionStore store.SessionStore
	XPStore      store.XPStore
	Params       *engine.Params
	Logger       *slog.Logger
	// Now overrides the time source, primarily for tests.
	Now func() time.Time
}

// NewManager creates a store-backed session Manager.
func NewManager(cfg Config) Manager {
	if cfg.SessionStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("session store cannot be nil")
	}

	params := cfg.Params
	if params == nil {
		params = engine.NewDefaultParams()
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &manager{
		sessions: cfg.SessionStore,
		xp:       cfg.XPStore,
		params:   params,
		logger:   log.With(slog.String("component", "session_manager")),
		now:      now,
	}
}

// Start implements Manager.Start
func (m *manager) Start(ctx context.Context, userID uuid.UUID, mode domain.SessionMode) (*domain.RecoverySession, error) {
	log := logger.FromContextOrDefault(ctx, m.logger)

	// Validate before creating anything; the store enforces the invariant
	// again under concurrency.
	_, err := m.sessions.GetActiveSession(ctx, userID)
	if err == nil {
		return nil, newServiceError("start", "user already has an active session", ErrAlreadyActive)
	}
	if !errors.Is(err, store.ErrNoActiveSession) {
		return nil, newServiceError("start", "failed to check for active session", err)
	}

	session, err := domain.NewRecoverySession(userID, mode, m.now())
	if err != nil {
		return nil, newServiceError("start", "invalid session", err)
	}

	if err := m.sessions.CreateSession(ctx, session); err != nil {
		if errors.Is(err, store.ErrActiveSessionExists) {
			// Lost the race against a concurrent start.
			return nil, newServiceError("start", "user already has an active session", ErrAlreadyActive)
		}
		return nil, newServiceError("start", "failed to create session", err)
	}

	log.Info("recovery session started",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()),
		slog.String("mode", string(session.Mode)))

	return session, nil
}

// Active implements Manager.Active
func (m *manager) Active(ctx context.Context, userID uuid.UUID) (*domain.RecoverySession, error) {
	session, err := m.sessions.GetActiveSession(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoActiveSession) {
			return nil, ErrNoActiveSession
		}
		return nil, newServiceError("active", "failed to load active session", err)
	}
	return session, nil
}

// ReportViolation implements Manager.ReportViolation
func (m *manager) ReportViolation(ctx context.Context, userID uuid.UUID) (*domain.RecoverySession, error) {
	log := logger.FromContextOrDefault(ctx, m.logger)

	session, err := m.sessions.GetActiveSession(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoActiveSession) {
			return nil, ErrNoActiveSession
		}
		return nil, newServiceError("report_violation", "failed to load active session", err)
	}

	updated, err := m.sessions.RecordViolation(ctx, session.ID, m.now().UTC())
	if err != nil {
		if store.IsNotFoundError(err) {
			// The session finished between the read and the update.
			return nil, ErrNoActiveSession
		}
		return nil, newServiceError("report_violation", "failed to record violation", err)
	}

	log.Info("recovery session violation recorded",
		slog.String("user_id", userID.String()),
		slog.String("session_id", updated.ID.String()),
		slog.Int("violation_count", updated.ViolationCount))

	return updated, nil
}

// Complete implements Manager.Complete
func (m *manager) Complete(ctx context.Context, userID uuid.UUID) (*domain.RecoverySession, error) {
	log := logger.FromContextOrDefault(ctx, m.logger)

	session, err := m.sessions.GetActiveSession(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoActiveSession) {
			return nil, ErrNoActiveSession
		}
		return nil, newServiceError("complete", "failed to load active session", err)
	}

	now := m.now().UTC()
	elapsed := session.ElapsedSeconds(now)
	if elapsed < m.params.MinSessionSeconds {
		return nil, newServiceError("complete", "minimum duration not reached", ErrSessionTooShort)
	}

	if err := m.sessions.CompleteSession(ctx, session.ID, now, elapsed); err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrNoActiveSession
		}
		return nil, newServiceError("complete", "failed to complete session", err)
	}

	session.Status = domain.SessionStatusCompleted
	session.CompletedAt = &now
	session.DurationSeconds = elapsed

	if m.xp != nil {
		if err := m.awardXP(ctx, session, now); err != nil {
			// The session is already completed; losing the XP credit is
			// logged rather than unwinding the completion.
			log.Error("failed to award recovery xp",
				slog.String("session_id", session.ID.String()),
				slog.String("error", err.Error()))
		}
	}

	log.Info("recovery session completed",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()),
		slog.Int("duration_seconds", elapsed),
		slog.Int("violation_count", session.ViolationCount))

	return session, nil
}

// awardXP credits recovery XP for a completed session, one point per minute
// of final recorded duration.
func (m *manager) awardXP(ctx context.Context, session *domain.RecoverySession, now time.Time) error {
	minutes := session.DurationSeconds / 60
	event, err := domain.NewXPEvent(
		session.UserID,
		domain.CategoryRecovery,
		"recovery_"+string(session.Mode),
		float64(minutes),
		now,
	)
	if err != nil {
		return err
	}
	return m.xp.AppendXP(ctx, event)
}

// Cancel implements Manager.Cancel
func (m *manager) Cancel(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, m.logger)

	session, err := m.sessions.GetActiveSession(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoActiveSession) {
			return ErrNoActiveSession
		}
		return newServiceError("cancel", "failed to load active session", err)
	}

	if err := m.sessions.CancelSession(ctx, session.ID, m.now().UTC()); err != nil {
		if store.IsNotFoundError(err) {
			return ErrNoActiveSession
		}
		return newServiceError("cancel", "failed to cancel session", err)
	}

	log.Info("recovery session cancelled",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()))

	return nil
}
