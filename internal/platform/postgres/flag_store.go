package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/store"
)

// PostgresWeeklyFlagStore implements the store.WeeklyFlagStore interface
// using a PostgreSQL database as the storage backend. Flags are keyed by
// (user, name, week_start); rows from previous ISO weeks simply stop
// matching, so stale flags expire without explicit cleanup.
type PostgresWeeklyFlagStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWeeklyFlagStore creates a new PostgreSQL implementation of the
// WeeklyFlagStore interface. If logger is nil, a default logger will be used.
func NewPostgresWeeklyFlagStore(db store.DBTX, logger *slog.Logger) *PostgresWeeklyFlagStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWeeklyFlagStore{
		db:     db,
		logger: logger.With(slog.String("component", "weekly_flag_store")),
	}
}

// Ensure PostgresWeeklyFlagStore implements store.WeeklyFlagStore interface
var _ store.WeeklyFlagStore = (*PostgresWeeklyFlagStore)(nil)

// GetFlag implements store.WeeklyFlagStore.GetFlag
func (s *PostgresWeeklyFlagStore) GetFlag(ctx context.Context, userID uuid.UUID, name string, weekStart time.Time) (bool, error) {
	query := `
		SELECT value
		FROM weekly_flags
		WHERE user_id = $1 AND name = $2 AND week_start = $3
	`

	var value bool
	err := s.db.QueryRowContext(ctx, query, userID, name, weekStart).Scan(&value)
	if err != nil {
		// A missing row is simply an unset flag.
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get weekly flag %s: %w", name, err)
	}

	return value, nil
}

// SetFlag implements store.WeeklyFlagStore.SetFlag
func (s *PostgresWeeklyFlagStore) SetFlag(ctx context.Context, userID uuid.UUID, name string, weekStart time.Time, value bool) error {
	query := `
		INSERT INTO weekly_flags (user_id, name, week_start, value, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, name, week_start)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	_, err := s.db.ExecContext(ctx, query, userID, name, weekStart, value)
	if err != nil {
		return fmt.Errorf("failed to set weekly flag %s: %w", name, err)
	}

	return nil
}
