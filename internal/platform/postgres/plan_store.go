package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/store"
)

// PostgresPlanStore implements the store.PlanStore interface
// using a PostgreSQL database as the storage backend. Plans are read-only
// configuration; category targets are stored as JSONB.
type PostgresPlanStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPlanStore creates a new PostgreSQL implementation of the
// PlanStore interface. If logger is nil, a default logger will be used.
func NewPostgresPlanStore(db store.DBTX, logger *slog.Logger) *PostgresPlanStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPlanStore{
		db:     db,
		logger: logger.With(slog.String("component", "plan_store")),
	}
}

// Ensure PostgresPlanStore implements store.PlanStore interface
var _ store.PlanStore = (*PostgresPlanStore)(nil)

const planColumns = `
	id, name, weekly_xp_target, category_targets, optimal_min, optimal_max,
	recovery_minutes_target, created_at, updated_at
`

// scanPlan scans one plan row in planColumns order.
func scanPlan(row interface{ Scan(...any) error }) (*domain.TrainingPlan, error) {
	var plan domain.TrainingPlan
	var categoryTargets []byte

	err := row.Scan(
		&plan.ID,
		&plan.Name,
		&plan.WeeklyXPTarget,
		&categoryTargets,
		&plan.OptimalRange.Min,
		&plan.OptimalRange.Max,
		&plan.RecoveryMinutesTarget,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(categoryTargets) > 0 {
		if err := json.Unmarshal(categoryTargets, &plan.CategoryTargets); err != nil {
			return nil, fmt.Errorf("failed to decode category targets: %w", err)
		}
	}

	return &plan, nil
}

// GetPlan implements store.PlanStore.GetPlan
func (s *PostgresPlanStore) GetPlan(ctx context.Context, id uuid.UUID) (*domain.TrainingPlan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM training_plans
		WHERE id = $1
	`

	plan, err := scanPlan(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapNoRows(fmt.Errorf("failed to get plan: %w", err), store.ErrPlanNotFound)
	}

	return plan, nil
}

// GetPlanForUser implements store.PlanStore.GetPlanForUser
func (s *PostgresPlanStore) GetPlanForUser(ctx context.Context, userID uuid.UUID) (*domain.TrainingPlan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM training_plans
		WHERE id = (SELECT plan_id FROM user_plans WHERE user_id = $1)
	`

	plan, err := scanPlan(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, mapNoRows(fmt.Errorf("failed to get plan for user: %w", err), store.ErrPlanNotFound)
	}

	return plan, nil
}
