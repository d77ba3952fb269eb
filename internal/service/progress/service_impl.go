package progress

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain/engine"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/platform/logger"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/store"
)

// celebrationFlag is the weekly flag name recording that the completion
// celebration was already shown this ISO week.
const celebrationFlag = "weekly_target_celebrated"

// service is the store-backed implementation of Service.
type service struct {
	xp     store.XPStore
	plans  store.PlanStore
	flags  store.WeeklyFlagStore
	logger *slog.Logger
	now    func() time.Time

	mu     sync.Mutex
	stable map[uuid.UUID]*WeeklyProgress
}

// Config holds the dependencies for NewService.
type Config struct {
	XPStore     store.XPStore
	PlanStore   store.PlanStore
	WeeklyFlags store.WeeklyFlagStore
	Logger      *slog.Logger
	// Now overrides the time source, primarily for tests.
	Now func() time.Time
}

// NewService creates a store-backed progress Service.
func NewService(cfg Config) Service {
	if cfg.XPStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("XP store cannot be nil")
	}
	if cfg.PlanStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("plan store cannot be nil")
	}
	if cfg.WeeklyFlags == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("weekly flag store cannot be nil")
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &service{
		xp:     cfg.XPStore,
		plans:  cfg.PlanStore,
		flags:  cfg.WeeklyFlags,
		logger: log.With(slog.String("component", "progress_service")),
		now:    now,
		stable: make(map[uuid.UUID]*WeeklyProgress),
	}
}

// Progress implements Service.Progress
func (s *service) Progress(ctx context.Context, userID uuid.UUID) (*WeeklyProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now().UTC()
	weekStart := domain.ISOWeekStart(now)

	snapshot, err := s.refresh(ctx, userID, now, weekStart)
	if err != nil {
		if errors.Is(err, store.ErrPlanNotFound) {
			return nil, newServiceError("progress", "user has no training plan", ErrNoPlan)
		}

		// A failed refresh falls back to the last stable snapshot of the
		// same week, never to zeroed data.
		if stale := s.lastStable(userID, weekStart); stale != nil {
			log.Warn("progress refresh failed, serving last stable snapshot",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()))
			return stale, nil
		}
		return nil, newServiceError("progress", "failed to compute progress", err)
	}

	s.mu.Lock()
	s.stable[userID] = snapshot
	s.mu.Unlock()

	return snapshot, nil
}

// refresh recomputes the snapshot from the XP event log.
func (s *service) refresh(ctx context.Context, userID uuid.UUID, now, weekStart time.Time) (*WeeklyProgress, error) {
	plan, err := s.plans.GetPlanForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rawXP, err := s.xp.SumXPByCategory(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}

	ledger := domain.WeeklyLedger{RawXP: rawXP, WeekStart: weekStart}
	total := engine.TotalProgress(ledger, plan)

	celebrationPending := false
	if total.Complete {
		celebrated, err := s.flags.GetFlag(ctx, userID, celebrationFlag, weekStart)
		if err != nil {
			return nil, err
		}
		celebrationPending = !celebrated
	}

	return &WeeklyProgress{
		UserID:             userID,
		WeekStart:          weekStart,
		Categories:         engine.CategoryProgress(ledger, plan),
		Total:              total,
		CelebrationPending: celebrationPending,
		ComputedAt:         now,
	}, nil
}

// lastStable returns the cached snapshot if it belongs to the given week.
// Snapshots from a previous ISO week are stale and never served.
func (s *service) lastStable(userID uuid.UUID, weekStart time.Time) *WeeklyProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.stable[userID]
	if !ok || !snapshot.WeekStart.Equal(weekStart) {
		return nil
	}
	return snapshot
}

// Invalidate implements Service.Invalidate
func (s *service) Invalidate(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stable, userID)
}

// MarkCelebrated implements Service.MarkCelebrated
func (s *service) MarkCelebrated(ctx context.Context, userID uuid.UUID) error {
	weekStart := domain.ISOWeekStart(s.now().UTC())
	if err := s.flags.SetFlag(ctx, userID, celebrationFlag, weekStart, true); err != nil {
		return newServiceError("mark_celebrated", "failed to set weekly flag", err)
	}
	s.Invalidate(userID)
	return nil
}
