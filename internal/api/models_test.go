package api

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
)

func TestSnapshotFromQuery(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET",
		"/gating?recovery_buffer=55&reasoning_capacity=70&sharpness=60&readiness=45&global_mode=FULL", nil)

	snapshot, err := SnapshotFromQuery(r)
	require.NoError(t, err)
	assert.Equal(t, 55.0, snapshot.RecoveryBuffer)
	assert.Equal(t, 70.0, snapshot.ReasoningCapacity)
	assert.Equal(t, 60.0, snapshot.Sharpness)
	assert.Equal(t, 45.0, snapshot.Readiness)
	assert.Equal(t, domain.GlobalModeFull, snapshot.GlobalMode)
}

func TestSnapshotFromQueryDefaultsGlobalMode(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET",
		"/gating?recovery_buffer=55&reasoning_capacity=70&sharpness=60&readiness=45", nil)

	snapshot, err := SnapshotFromQuery(r)
	require.NoError(t, err)
	assert.Equal(t, domain.GlobalModeFull, snapshot.GlobalMode)
}

func TestSnapshotFromQueryRejectsMissingField(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET",
		"/gating?recovery_buffer=55&reasoning_capacity=70&sharpness=60", nil)

	_, err := SnapshotFromQuery(r)
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
}

func TestSnapshotFromQueryRejectsMalformedValue(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET",
		"/gating?recovery_buffer=high&reasoning_capacity=70&sharpness=60&readiness=45", nil)

	_, err := SnapshotFromQuery(r)
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
}

func TestSnapshotFromQueryRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET",
		"/gating?recovery_buffer=155&reasoning_capacity=70&sharpness=60&readiness=45", nil)

	_, err := SnapshotFromQuery(r)
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
}
