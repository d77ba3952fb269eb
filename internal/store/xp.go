package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
)

// XPStore defines the interface for XP event persistence. XP events are
// append-only; weekly ledgers are derived by summing events from the ISO
// week start.
type XPStore interface {
	// AppendXP records a new XP event. Events are never updated or deleted.
	// Returns validation errors if the event data is invalid.
	AppendXP(ctx context.Context, event *domain.XPEvent) error

	// SumXPByCategory returns the raw XP earned per category since weekStart.
	// Categories without events are absent from the map.
	SumXPByCategory(ctx context.Context, userID uuid.UUID, weekStart time.Time) (map[domain.Category]float64, error)

	// SumXP returns the raw XP earned for a single category since weekStart.
	SumXP(ctx context.Context, userID uuid.UUID, category domain.Category, weekStart time.Time) (float64, error)

	// CountContentUsage returns how many XP events for the given content key
	// occurred at or after since. Used for daily/weekly consumption caps.
	CountContentUsage(ctx context.Context, userID uuid.UUID, contentKey string, since time.Time) (int, error)
}
