package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Plan-specific validation errors.
var (
	// ErrPlanIDEmpty is returned when a training plan ID is empty or nil.
	ErrPlanIDEmpty = errors.New("training plan ID cannot be empty")

	// ErrPlanTargetInvalid is returned when a training plan's weekly XP
	// target is not positive.
	ErrPlanTargetInvalid = errors.New("training plan weekly XP target must be positive")

	// ErrPlanRangeInvalid is returned when the optimal range is inverted.
	ErrPlanRangeInvalid = errors.New("training plan optimal range min cannot exceed max")
)

// XPRange is an inclusive [Min,Max] band of weekly XP.
type XPRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether xp falls inside the inclusive range.
func (r XPRange) Contains(xp int) bool {
	return xp >= r.Min && xp <= r.Max
}

// TrainingPlan is the read-only weekly training configuration for a user.
// The engine consumes it as-is and never mutates it.
type TrainingPlan struct {
	ID                    uuid.UUID        `json:"id"`
	Name                  string           `json:"name"`
	WeeklyXPTarget        int              `json:"weekly_xp_target"`
	CategoryTargets       map[Category]int `json:"category_targets"`
	OptimalRange          XPRange          `json:"optimal_range"`
	RecoveryMinutesTarget int              `json:"recovery_minutes_target"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

// Validate checks if the TrainingPlan has valid data.
// Returns an error if any field fails validation.
func (p *TrainingPlan) Validate() error {
	if p.ID == uuid.Nil {
		return ErrPlanIDEmpty
	}

	if p.WeeklyXPTarget <= 0 {
		return ErrPlanTargetInvalid
	}

	if p.OptimalRange.Min > p.OptimalRange.Max {
		return ErrPlanRangeInvalid
	}

	for category := range p.CategoryTargets {
		if !category.IsValid() {
			return ErrInvalidCategory
		}
	}

	return nil
}

// CategoryTarget returns the XP target for a category, or zero when the plan
// does not set one. A zero target means the category is treated as already
// complete by the accountant.
func (p *TrainingPlan) CategoryTarget(category Category) int {
	return p.CategoryTargets[category]
}
