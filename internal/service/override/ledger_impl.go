package override

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain/engine"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/platform/logger"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/store"
)

// ledger is the store-backed implementation of Ledger.
type ledger struct {
	overrides store.OverrideStore
	// db enables the transactional re-check in RecordOverride. When nil
	// (e.g. in tests with an in-memory store) the re-check still runs, just
	// without transaction isolation.
	db     *sql.DB
	params *engine.Params
	logger *slog.Logger
	now    func() time.Time
}

// Config holds the dependencies for NewLedger.
type Config struct {
	OverrideStore store.OverrideStore
	DB            *sql.DB
	Params        *engine.Params
	Logger        *slog.Logger
	// Now overrides the time source, primarily for tests.
	Now func() time.Time
}

// NewLedger creates a store-backed override Ledger.
func NewLedger(cfg Config) Ledger {
	if cfg.OverrideStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("override store cannot be nil")
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

	return &ledger{
		overrides: cfg.OverrideStore,
		db:        cfg.DB,
		params:    params,
		logger:    log.With(slog.String("component", "override_ledger")),
		now:       now,
	}
}

// allowanceAt computes the allowance from the record log at one instant.
func (l *ledger) allowanceAt(ctx context.Context, overrides store.OverrideStore, userID uuid.UUID, now time.Time) (engine.Allowance, error) {
	todayCount, err := overrides.CountSince(ctx, userID, domain.DayStart(now))
	if err != nil {
		return engine.Allowance{}, err
	}

	weekCount, err := overrides.CountSince(ctx, userID, domain.ISOWeekStart(now))
	if err != nil {
		return engine.Allowance{}, err
	}

	return engine.Allowance{
		TodayCount:   todayCount,
		WeekCount:    weekCount,
		CanOverride:  engine.CanOverride(todayCount, weekCount, l.params),
		PenaltyToday: todayCount > 0,
	}, nil
}

// Allowance implements Ledger.Allowance
func (l *ledger) Allowance(ctx context.Context, userID uuid.UUID) (engine.Allowance, error) {
	allowance, err := l.allowanceAt(ctx, l.overrides, userID, l.now())
	if err != nil {
		return engine.Allowance{}, newServiceError("allowance", "failed to count overrides", err)
	}
	return allowance, nil
}

// WasOverriddenToday implements Ledger.WasOverriddenToday
func (l *ledger) WasOverriddenToday(ctx context.Context, userID uuid.UUID, taskID string) (bool, error) {
	exists, err := l.overrides.ExistsForTask(ctx, userID, taskID, domain.DayStart(l.now()))
	if err != nil {
		return false, newServiceError("was_overridden_today", "failed to check override", err)
	}
	return exists, nil
}

// RecordOverride implements Ledger.RecordOverride
func (l *ledger) RecordOverride(ctx context.Context, userID uuid.UUID, taskID string, category domain.Category) (*domain.OverrideRecord, error) {
	log := logger.FromContextOrDefault(ctx, l.logger)
	now := l.now().UTC()

	record, err := domain.NewOverrideRecord(userID, taskID, category, now)
	if err != nil {
		return nil, newServiceError("record_override", "invalid override", err)
	}

	appendRecord := func(overrides store.OverrideStore) error {
		// Re-check at call time; the caller's earlier canOverride check may
		// be stale.
		allowance, err := l.allowanceAt(ctx, overrides, userID, now)
		if err != nil {
			return newServiceError("record_override", "failed to count overrides", err)
		}
		if !allowance.CanOverride {
			return newServiceError("record_override", "daily or weekly cap exhausted", ErrOverrideLimit)
		}

		overridden, err := overrides.ExistsForTask(ctx, userID, taskID, domain.DayStart(now))
		if err != nil {
			return newServiceError("record_override", "failed to check task override", err)
		}
		if overridden {
			return newServiceError("record_override", "task already overridden today", ErrOverrideLimit)
		}

		if err := overrides.AppendOverride(ctx, record); err != nil {
			if errors.Is(err, store.ErrOverrideExists) {
				return newServiceError("record_override", "task already overridden today", ErrOverrideLimit)
			}
			return newServiceError("record_override", "failed to append override", err)
		}
		return nil
	}

	if l.db != nil {
		err = store.RunInTransaction(ctx, l.db, func(ctx context.Context, tx *sql.Tx) error {
			return appendRecord(l.overrides.WithTxOverrideStore(tx))
		})
	} else {
		err = appendRecord(l.overrides)
	}
	if err != nil {
		return nil, err
	}

	log.Info("override recorded",
		slog.String("user_id", userID.String()),
		slog.String("task_id", taskID),
		slog.String("category", string(category)))

	return record, nil
}

// AdjustedCapacity implements Ledger.AdjustedCapacity
func (l *ledger) AdjustedCapacity(ctx context.Context, userID uuid.UUID, snapshot domain.CognitiveSnapshot) (float64, error) {
	if err := snapshot.Validate(); err != nil {
		return 0, err
	}

	allowance, err := l.Allowance(ctx, userID)
	if err != nil {
		return 0, err
	}

	return engine.AdjustedCapacity(snapshot.ReasoningCapacity, allowance.PenaltyToday, l.params), nil
}
