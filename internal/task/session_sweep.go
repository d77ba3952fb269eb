package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/store"
)

// TaskTypeSessionSweep identifies the abandoned-session cleanup task.
const TaskTypeSessionSweep = "session_sweep"

// DefaultStaleSessionHorizon is how long an active recovery session may sit
// without activity before the sweep cancels it as abandoned.
const DefaultStaleSessionHorizon = 6 * time.Hour

// SessionSweepConfig holds the dependencies for NewSessionSweepTask.
type SessionSweepConfig struct {
	SessionStore store.SessionStore
	// Horizon overrides DefaultStaleSessionHorizon when positive.
	Horizon time.Duration
	Logger  *slog.Logger
	// Now overrides the time source, primarily for tests.
	Now func() time.Time
}

// SessionSweepTask cancels recovery sessions that were started (or last
// reset) longer than the horizon ago and never finished. The work is
// recomputed from the session store on every run, so re-running a sweep
// after a crash is harmless.
type SessionSweepTask struct {
	id       uuid.UUID
	sessions store.SessionStore
	horizon  time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

var _ Task = (*SessionSweepTask)(nil)

// NewSessionSweepTask creates a sweep task over the given session store.
func NewSessionSweepTask(cfg SessionSweepConfig) *SessionSweepTask {
	if cfg.SessionStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("session store cannot be nil")
	}

	horizon := cfg.Horizon
	if horizon <= 0 {
		horizon = DefaultStaleSessionHorizon
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &SessionSweepTask{
		id:       uuid.New(),
		sessions: cfg.SessionStore,
		horizon:  horizon,
		logger:   log.With(slog.String("component", "session_sweep")),
		now:      now,
	}
}

// ID implements Task.ID
func (t *SessionSweepTask) ID() uuid.UUID {
	return t.id
}

// Type implements Task.Type
func (t *SessionSweepTask) Type() string {
	return TaskTypeSessionSweep
}

// Execute implements Task.Execute
func (t *SessionSweepTask) Execute(ctx context.Context) error {
	now := t.now().UTC()

	stale, err := t.sessions.ListStaleActiveSessions(ctx, t.horizon, now)
	if err != nil {
		return fmt.Errorf("failed to list stale sessions: %w", err)
	}

	if len(stale) == 0 {
		return nil
	}

	cancelled := 0
	for _, session := range stale {
		if err := t.sessions.CancelSession(ctx, session.ID, now); err != nil {
			// A session completed between list and cancel is not a failure.
			t.logger.Warn("failed to cancel stale session",
				"session_id", session.ID,
				"user_id", session.UserID,
				"error", err)
			continue
		}
		cancelled++
	}

	t.logger.Info("stale session sweep finished",
		"stale_count", len(stale),
		"cancelled_count", cancelled)
	return nil
}
