package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	t.Parallel()

	// Entity-specific errors participate in the generic families.
	assert.ErrorIs(t, ErrNoActiveSession, ErrNotFound)
	assert.ErrorIs(t, ErrSessionNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrPlanNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrActiveSessionExists, ErrDuplicate)
	assert.ErrorIs(t, ErrOverrideExists, ErrDuplicate)

	assert.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", ErrSessionNotFound)))
	assert.True(t, IsDuplicateError(fmt.Errorf("create: %w", ErrActiveSessionExists)))
	assert.False(t, IsNotFoundError(ErrActiveSessionExists))
	assert.False(t, IsDuplicateError(errors.New("boom")))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection reset")
	err := NewStoreError("recovery_session", "create", "insert failed", inner)

	assert.Contains(t, err.Error(), "create operation on recovery_session failed")
	assert.Contains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, inner)

	bare := NewStoreError("override", "append", "constraint violated", nil)
	assert.Equal(t, "append operation on override failed: constraint violated", bare.Error())
}
