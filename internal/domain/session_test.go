package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecoverySession(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	session, err := NewRecoverySession(uuid.New(), SessionModeDetox, start)
	require.NoError(t, err)

	assert.Equal(t, SessionStatusActive, session.Status)
	assert.Equal(t, 0, session.ViolationCount)
	assert.Nil(t, session.TimerResetAt)
	assert.Equal(t, start, session.StartedAt)
}

func TestNewRecoverySessionValidation(t *testing.T) {
	t.Parallel()

	_, err := NewRecoverySession(uuid.Nil, SessionModeWalk, time.Now())
	assert.ErrorIs(t, err, ErrSessionUserIDEmpty)

	_, err = NewRecoverySession(uuid.New(), SessionMode("NAP"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidSessionMode)
}

func TestSessionValidateResetBeforeStart(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	session, err := NewRecoverySession(uuid.New(), SessionModeWalk, start)
	require.NoError(t, err)

	early := start.Add(-time.Minute)
	session.TimerResetAt = &early
	assert.ErrorIs(t, session.Validate(), ErrSessionResetBeforeStart)
}

func TestElapsedSeconds(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	session, err := NewRecoverySession(uuid.New(), SessionModeDetox, start)
	require.NoError(t, err)

	testCases := []struct {
		name    string
		resetAt *time.Time
		now     time.Time
		want    int
	}{
		{
			name: "measured from start without resets",
			now:  start.Add(1700 * time.Second),
			want: 1700,
		},
		{
			name:    "measured from most recent reset",
			resetAt: timePtr(start.Add(500 * time.Second)),
			now:     start.Add(2299 * time.Second),
			want:    1799,
		},
		{
			name:    "reset then past the threshold",
			resetAt: timePtr(start.Add(500 * time.Second)),
			now:     start.Add(2301 * time.Second),
			want:    1801,
		},
		{
			name: "clock before start clamps to zero",
			now:  start.Add(-time.Minute),
			want: 0,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := *session
			s.TimerResetAt = tc.resetAt
			assert.Equal(t, tc.want, s.ElapsedSeconds(tc.now))
		})
	}
}

func TestElapsedSecondsIsIdempotent(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	session, err := NewRecoverySession(uuid.New(), SessionModeWalk, start)
	require.NoError(t, err)

	now := start.Add(42 * time.Second)
	first := session.ElapsedSeconds(now)
	second := session.ElapsedSeconds(now)

	assert.Equal(t, first, second)
	assert.Nil(t, session.TimerResetAt, "polling must not mutate the session")
}

func timePtr(t time.Time) *time.Time {
	return &t
}
