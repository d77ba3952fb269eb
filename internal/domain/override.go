package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Override-specific validation errors.
var (
	// ErrOverrideUserIDEmpty is returned when an override record's user ID is empty.
	ErrOverrideUserIDEmpty = errors.New("override user ID cannot be empty")

	// ErrOverrideTaskIDEmpty is returned when an override record's task ID is empty.
	ErrOverrideTaskIDEmpty = errors.New("override task ID cannot be empty")
)

// OverrideRecord is one entry in the append-only log of manual overrides of
// withheld content. Records are queried by "count today" and "count this ISO
// week"; they are never updated or deleted.
type OverrideRecord struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	TaskID     string    `json:"task_id"`
	Category   Category  `json:"category"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewOverrideRecord creates a new OverrideRecord occurring at the given
// instant. Returns an error if validation fails.
func NewOverrideRecord(userID uuid.UUID, taskID string, category Category, occurredAt time.Time) (*OverrideRecord, error) {
	record := &OverrideRecord{
		ID:         uuid.New(),
		UserID:     userID,
		TaskID:     taskID,
		Category:   category,
		OccurredAt: occurredAt.UTC(),
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the OverrideRecord has valid data.
func (r *OverrideRecord) Validate() error {
	if r.UserID == uuid.Nil {
		return ErrOverrideUserIDEmpty
	}

	if r.TaskID == "" {
		return ErrOverrideTaskIDEmpty
	}

	if !r.Category.IsValid() {
		return ErrInvalidCategory
	}

	return nil
}
