// Package task provides the background worker pool and the periodic
// maintenance tasks that run on it. Tasks here are idempotent and recompute
// their work from the stores, so no task state is persisted.
package task

import (
	"context"

	"github.com/google/uuid"
)

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Execute runs the task logic
	Execute(ctx context.Context) error
}
