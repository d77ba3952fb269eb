package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/platform/logger"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/store"
)

// PostgresXPStore implements the store.XPStore interface using a PostgreSQL
// database as the storage backend. XP events are append-only rows in the
// xp_events table.
type PostgresXPStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresXPStore creates a new PostgreSQL implementation of the XPStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewPostgresXPStore(db store.DBTX, logger *slog.Logger) *PostgresXPStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresXPStore{
		db:     db,
		logger: logger.With(slog.String("component", "xp_store")),
	}
}

// Ensure PostgresXPStore implements store.XPStore interface
var _ store.XPStore = (*PostgresXPStore)(nil)

// AppendXP implements store.XPStore.AppendXP
func (s *PostgresXPStore) AppendXP(ctx context.Context, event *domain.XPEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO xp_events (id, user_id, category, content_key, amount, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.UserID,
		event.Category,
		event.ContentKey,
		event.Amount,
		event.OccurredAt,
	)
	if err != nil {
		log.Error("failed to append xp event",
			"user_id", event.UserID,
			"category", event.Category,
			"error", err)
		return fmt.Errorf("failed to append xp event: %w", err)
	}

	return nil
}

// SumXPByCategory implements store.XPStore.SumXPByCategory
func (s *PostgresXPStore) SumXPByCategory(ctx context.Context, userID uuid.UUID, weekStart time.Time) (map[domain.Category]float64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM xp_events
		WHERE user_id = $1 AND occurred_at >= $2
		GROUP BY category
	`

	rows, err := s.db.QueryContext(ctx, query, userID, weekStart)
	if err != nil {
		log.Error("failed to sum xp by category",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to sum xp by category: %w", err)
	}
	defer rows.Close()

	sums := make(map[domain.Category]float64)
	for rows.Next() {
		var category domain.Category
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan xp sum row: %w", err)
		}
		sums[category] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating xp sum rows: %w", err)
	}

	return sums, nil
}

// SumXP implements store.XPStore.SumXP
func (s *PostgresXPStore) SumXP(ctx context.Context, userID uuid.UUID, category domain.Category, weekStart time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM xp_events
		WHERE user_id = $1 AND category = $2 AND occurred_at >= $3
	`

	var total float64
	err := s.db.QueryRowContext(ctx, query, userID, category, weekStart).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum xp for category %s: %w", category, err)
	}

	return total, nil
}

// CountContentUsage implements store.XPStore.CountContentUsage
func (s *PostgresXPStore) CountContentUsage(ctx context.Context, userID uuid.UUID, contentKey string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM xp_events
		WHERE user_id = $1 AND content_key = $2 AND occurred_at >= $3
	`

	var count int
	err := s.db.QueryRowContext(ctx, query, userID, contentKey, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count content usage for %s: %w", contentKey, err)
	}

	return count, nil
}
