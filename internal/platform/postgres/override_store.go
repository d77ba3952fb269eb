package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/platform/logger"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/store"
)

// uniqueOverridePerTaskDayConstraint prevents re-overriding the same task
// within the same day at the storage layer.
const uniqueOverridePerTaskDayConstraint = "override_records_one_per_task_day"

// PostgresOverrideStore implements the store.OverrideStore interface
// using a PostgreSQL database as the storage backend.
type PostgresOverrideStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresOverrideStore creates a new PostgreSQL implementation of the
// OverrideStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresOverrideStore(db store.DBTX, logger *slog.Logger) *PostgresOverrideStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresOverrideStore{
		db:     db,
		logger: logger.With(slog.String("component", "override_store")),
	}
}

// Ensure PostgresOverrideStore implements store.OverrideStore interface
var _ store.OverrideStore = (*PostgresOverrideStore)(nil)

// AppendOverride implements store.OverrideStore.AppendOverride
func (s *PostgresOverrideStore) AppendOverride(ctx context.Context, record *domain.OverrideRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO override_records (id, user_id, task_id, category, occurred_at, occurred_on)
		VALUES ($1, $2, $3, $4, $5, ($5 AT TIME ZONE 'UTC')::date)
	`

	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.TaskID,
		record.Category,
		record.OccurredAt,
	)
	if err != nil {
		if isUniqueViolation(err, uniqueOverridePerTaskDayConstraint) {
			log.Debug("override already recorded for task today",
				"user_id", record.UserID,
				"task_id", record.TaskID)
			return store.ErrOverrideExists
		}
		log.Error("failed to append override",
			"user_id", record.UserID,
			"task_id", record.TaskID,
			"error", err)
		return fmt.Errorf("failed to append override: %w", err)
	}

	return nil
}

// CountSince implements store.OverrideStore.CountSince
func (s *PostgresOverrideStore) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM override_records
		WHERE user_id = $1 AND occurred_at >= $2
	`

	var count int
	err := s.db.QueryRowContext(ctx, query, userID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count overrides: %w", err)
	}

	return count, nil
}

// ExistsForTask implements store.OverrideStore.ExistsForTask
func (s *PostgresOverrideStore) ExistsForTask(ctx context.Context, userID uuid.UUID, taskID string, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM override_records
			WHERE user_id = $1 AND task_id = $2 AND occurred_at >= $3
		)
	`

	var exists bool
	err := s.db.QueryRowContext(ctx, query, userID, taskID, since).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check override existence: %w", err)
	}

	return exists, nil
}

// WithTxOverrideStore implements store.OverrideStore.WithTxOverrideStore
func (s *PostgresOverrideStore) WithTxOverrideStore(tx *sql.Tx) store.OverrideStore {
	return &PostgresOverrideStore{
		db:     tx,
		logger: s.logger,
	}
}
