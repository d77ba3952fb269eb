package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
)

// OverrideStore defines the interface for the append-only override log.
// Records are queried by day and by ISO week; they are never updated or
// deleted.
type OverrideStore interface {
	// AppendOverride records a new override. Returns ErrOverrideExists when
	// an override for the same task was already recorded on the same day
	// (enforced with a unique constraint).
	AppendOverride(ctx context.Context, record *domain.OverrideRecord) error

	// CountSince returns how many overrides the user recorded at or after since.
	CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)

	// ExistsForTask reports whether the user already overrode the given task
	// at or after since.
	ExistsForTask(ctx context.Context, userID uuid.UUID, taskID string, since time.Time) (bool, error)

	// WithTxOverrideStore returns a new OverrideStore instance that uses the
	// provided transaction. The override ledger re-checks the allowance and
	// appends the record within one transaction, so the limit cannot be
	// exceeded by concurrent callers.
	WithTxOverrideStore(tx *sql.Tx) OverrideStore
}
