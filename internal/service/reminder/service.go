// Package reminder computes whether a nudge toward the daily recovery goal
// or the weekly XP target is warranted. It only decides; delivery belongs to
// a notification layer elsewhere.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/store"
)

// Reminder describes how far the user is from the daily and weekly goals.
type Reminder struct {
	// RecoveryMinutesRemaining is the remaining recovery practice to reach
	// today's goal, zero when the goal is met.
	RecoveryMinutesRemaining int `json:"recovery_minutes_remaining"`

	// WeeklyXPRemaining is the raw XP still needed to hit the weekly target,
	// zero when the target is met.
	WeeklyXPRemaining float64 `json:"weekly_xp_remaining"`

	// ShouldRemind is true when either goal still has remaining work.
	ShouldRemind bool `json:"should_remind"`
}

// Service computes reminder state for a user.
type Service interface {
	Compute(ctx context.Context, userID uuid.UUID) (Reminder, error)
}

// ServiceError wraps errors from the reminder service with additional context.
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

// service is the store-backed implementation of Service.
type service struct {
	xp     store.XPStore
	plans  store.PlanStore
	logger *slog.Logger
	now    func() time.Time
}

// Config holds the dependencies for NewService.
type Config struct {
	XPStore   store.XPStore
	PlanStore store.PlanStore
	Logger    *slog.Logger
	// Now overrides the time source, primarily for tests.
	Now func() time.Time
}

// NewService creates a store-backed reminder Service.
func NewService(cfg Config) Service {
	if cfg.XPStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("XP store cannot be nil")
	}
	if cfg.PlanStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("plan store cannot be nil")
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
		logger: log.With(slog.String("component", "reminder_service")),
		now:    now,
	}
}

// Compute implements Service.Compute
func (s *service) Compute(ctx context.Context, userID uuid.UUID) (Reminder, error) {
	plan, err := s.plans.GetPlanForUser(ctx, userID)
	if err != nil {
		return Reminder{}, &ServiceError{Operation: "compute", Message: "failed to load plan", Err: err}
	}

	now := s.now().UTC()

	// Recovery XP accrues one point per practiced minute, so today's
	// recovery XP doubles as today's recovery minutes.
	recoveryToday, err := s.xp.SumXP(ctx, userID, domain.CategoryRecovery, domain.DayStart(now))
	if err != nil {
		return Reminder{}, &ServiceError{Operation: "compute", Message: "failed to sum recovery XP", Err: err}
	}

	weekXP, err := s.xp.SumXPByCategory(ctx, userID, domain.ISOWeekStart(now))
	if err != nil {
		return Reminder{}, &ServiceError{Operation: "compute", Message: "failed to sum weekly XP", Err: err}
	}

	ledger := domain.WeeklyLedger{RawXP: weekXP, WeekStart: domain.ISOWeekStart(now)}

	minutesRemaining := plan.RecoveryMinutesTarget - int(math.Floor(recoveryToday))
	if minutesRemaining < 0 {
		minutesRemaining = 0
	}

	xpRemaining := float64(plan.WeeklyXPTarget) - ledger.RawTotal()
	if xpRemaining < 0 {
		xpRemaining = 0
	}

	return Reminder{
		RecoveryMinutesRemaining: minutesRemaining,
		WeeklyXPRemaining:        xpRemaining,
		ShouldRemind:             minutesRemaining > 0 || xpRemaining > 0,
	}, nil
}
