package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WeeklyFlagStore is a keyed, expiring boolean store for per-week UI state
// such as "celebration shown this week". Each flag is keyed by user, name
// and ISO week start; a flag set in a previous week is stale and reads as
// false, so no explicit clearing is needed at the week boundary.
type WeeklyFlagStore interface {
	// GetFlag reports whether the flag is set for the given ISO week.
	// Entries from other weeks are ignored.
	GetFlag(ctx context.Context, userID uuid.UUID, name string, weekStart time.Time) (bool, error)

	// SetFlag upserts the flag value for the given ISO week.
	SetFlag(ctx context.Context, userID uuid.UUID, name string, weekStart time.Time, value bool) error
}
