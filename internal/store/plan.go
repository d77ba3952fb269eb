package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
)

// PlanStore defines the read-only lookup of training plan configuration.
type PlanStore interface {
	// GetPlan retrieves a training plan by its ID.
	// Returns ErrPlanNotFound if the plan does not exist.
	GetPlan(ctx context.Context, id uuid.UUID) (*domain.TrainingPlan, error)

	// GetPlanForUser retrieves the training plan assigned to a user.
	// Returns ErrPlanNotFound if the user has no plan assigned.
	GetPlanForUser(ctx context.Context, userID uuid.UUID) (*domain.TrainingPlan, error)
}
