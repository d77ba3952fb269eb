package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// XP-specific validation errors.
var (
	// ErrXPUserIDEmpty is returned when an XP event's user ID is empty.
	ErrXPUserIDEmpty = errors.New("xp event user ID cannot be empty")

	// ErrXPAmountNegative is returned when an XP event's amount is negative.
	// Raw XP only ever grows within a week.
	ErrXPAmountNegative = errors.New("xp event amount cannot be negative")
)

// XPEvent is one append-only credit of experience points earned by a
// completed activity. Events are summed per category over the ISO week to
// build the WeeklyLedger, and counted per content key for consumption caps.
type XPEvent struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Category   Category  `json:"category"`
	ContentKey string    `json:"content_key"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewXPEvent creates a new XPEvent occurring at the given instant.
// Returns an error if validation fails.
func NewXPEvent(userID uuid.UUID, category Category, contentKey string, amount float64, occurredAt time.Time) (*XPEvent, error) {
	event := &XPEvent{
		ID:         uuid.New(),
		UserID:     userID,
		Category:   category,
		ContentKey: contentKey,
		Amount:     amount,
		OccurredAt: occurredAt.UTC(),
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return event, nil
}

// Validate checks if the XPEvent has valid data.
func (e *XPEvent) Validate() error {
	if e.UserID == uuid.Nil {
		return ErrXPUserIDEmpty
	}

	if !e.Category.IsValid() {
		return ErrInvalidCategory
	}

	if e.Amount < 0 {
		return ErrXPAmountNegative
	}

	return nil
}
