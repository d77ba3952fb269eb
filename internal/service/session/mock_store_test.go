package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/store"
)

// mockSessionStore is an in-memory store.SessionStore that mirrors the
// storage-layer guarantees: one ACTIVE session per user and serialized
// violation increments.
type mockSessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.RecoverySession
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[uuid.UUID]*domain.RecoverySession)}
}

var _ store.SessionStore = (*mockSessionStore)(nil)

func (m *mockSessionStore) GetActiveSession(ctx context.Context, userID uuid.UUID) (*domain.RecoverySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.sessions {
		if s.UserID == userID && s.Status == domain.SessionStatusActive {
			copied := *s
			return &copied, nil
		}
	}
	return nil, store.ErrNoActiveSession
}

func (m *mockSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.RecoverySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, store.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *mockSessionStore) CreateSession(ctx context.Context, session *domain.RecoverySession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.sessions {
		if s.UserID == session.UserID && s.Status == domain.SessionStatusActive {
			return store.ErrActiveSessionExists
		}
	}

	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *mockSessionStore) RecordViolation(ctx context.Context, sessionID uuid.UUID, at time.Time) (*domain.RecoverySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok || s.Status != domain.SessionStatusActive {
		return nil, store.ErrSessionNotFound
	}

	s.ViolationCount++
	reset := at
	s.TimerResetAt = &reset
	s.UpdatedAt = at

	copied := *s
	return &copied, nil
}

func (m *mockSessionStore) CompleteSession(ctx context.Context, sessionID uuid.UUID, completedAt time.Time, durationSeconds int) error {
	return m.finish(sessionID, domain.SessionStatusCompleted, completedAt, durationSeconds)
}

func (m *mockSessionStore) CancelSession(ctx context.Context, sessionID uuid.UUID, at time.Time) error {
	return m.finish(sessionID, domain.SessionStatusCancelled, at, 0)
}

func (m *mockSessionStore) finish(sessionID uuid.UUID, status domain.SessionStatus, at time.Time, duration int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok || s.Status != domain.SessionStatusActive {
		return store.ErrSessionNotFound
	}

	s.Status = status
	s.CompletedAt = &at
	s.DurationSeconds = duration
	s.UpdatedAt = at
	return nil
}

func (m *mockSessionStore) ListStaleActiveSessions(ctx context.Context, olderThan time.Duration, now time.Time) ([]*domain.RecoverySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := now.Add(-olderThan)
	var stale []*domain.RecoverySession
	for _, s := range m.sessions {
		if s.Status != domain.SessionStatusActive {
			continue
		}
		base := s.StartedAt
		if s.TimerResetAt != nil {
			base = *s.TimerResetAt
		}
		if base.Before(cutoff) {
			copied := *s
			stale = append(stale, &copied)
		}
	}
	return stale, nil
}

// mockXPStore records appended XP events for assertions.
type mockXPStore struct {
	mu     sync.Mutex
	events []*domain.XPEvent
}

var _ store.XPStore = (*mockXPStore)(nil)

func (m *mockXPStore) AppendXP(ctx context.Context, event *domain.XPEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockXPStore) SumXPByCategory(ctx context.Context, userID uuid.UUID, weekStart time.Time) (map[domain.Category]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sums := make(map[domain.Category]float64)
	for _, e := range m.events {
		if e.UserID == userID && !e.OccurredAt.Before(weekStart) {
			sums[e.Category] += e.Amount
		}
	}
	return sums, nil
}

func (m *mockXPStore) SumXP(ctx context.Context, userID uuid.UUID, category domain.Category, weekStart time.Time) (float64, error) {
	sums, err := m.SumXPByCategory(ctx, userID, weekStart)
	if err != nil {
		return 0, err
	}
	return sums[category], nil
}

func (m *mockXPStore) CountContentUsage(ctx context.Context, userID uuid.UUID, contentKey string, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, e := range m.events {
		if e.UserID == userID && e.ContentKey == contentKey && !e.OccurredAt.Before(since) {
			count++
		}
	}
	return count, nil
}
