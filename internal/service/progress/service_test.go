package progress

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/store"
)

// mockXPStore serves per-category sums and can be told to fail, simulating a
// refresh that breaks mid-flight.
type mockXPStore struct {
	mu   sync.Mutex
	sums map[domain.Category]float64
	err  error
}

var _ store.XPStore = (*mockXPStore)(nil)

func (m *mockXPStore) setSums(sums map[domain.Category]float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sums = sums
}

func (m *mockXPStore) fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *mockXPStore) AppendXP(ctx context.Context, event *domain.XPEvent) error {
	return nil
}

func (m *mockXPStore) SumXPByCategory(ctx context.Context, userID uuid.UUID, weekStart time.Time) (map[domain.Category]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	sums := make(map[domain.Category]float64, len(m.sums))
	for k, v := range m.sums {
		sums[k] = v
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
	return 0, nil
}

// mockPlanStore returns a single plan for every user.
type mockPlanStore struct {
	plan *domain.TrainingPlan
}

var _ store.PlanStore = (*mockPlanStore)(nil)

func (m *mockPlanStore) GetPlan(ctx context.Context, id uuid.UUID) (*domain.TrainingPlan, error) {
	if m.plan == nil {
		return nil, store.ErrPlanNotFound
	}
	return m.plan, nil
}

func (m *mockPlanStore) GetPlanForUser(ctx context.Context, userID uuid.UUID) (*domain.TrainingPlan, error) {
	return m.GetPlan(ctx, uuid.Nil)
}

// mockFlagStore is an in-memory store.WeeklyFlagStore keyed by week start.
type mockFlagStore struct {
	mu    sync.Mutex
	flags map[string]bool
}

var _ store.WeeklyFlagStore = (*mockFlagStore)(nil)

func flagKey(userID uuid.UUID, name string, weekStart time.Time) string {
	return userID.String() + "/" + name + "/" + weekStart.Format("2006-01-02")
}

func (m *mockFlagStore) GetFlag(ctx context.Context, userID uuid.UUID, name string, weekStart time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flags[flagKey(userID, name, weekStart)], nil
}

func (m *mockFlagStore) SetFlag(ctx context.Context, userID uuid.UUID, name string, weekStart time.Time, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.flags == nil {
		m.flags = make(map[string]bool)
	}
	m.flags[flagKey(userID, name, weekStart)] = value
	return nil
}

// testClock is a manually advanced time source.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testPlan() *domain.TrainingPlan {
	return &domain.TrainingPlan{
		ID:             uuid.New(),
		Name:           "balanced",
		WeeklyXPTarget: 100,
		CategoryTargets: map[domain.Category]int{
			domain.CategoryGames:    40,
			domain.CategoryTasks:    40,
			domain.CategoryRecovery: 20,
		},
		OptimalRange:          domain.XPRange{Min: 80, Max: 120},
		RecoveryMinutesTarget: 30,
	}
}

func newTestService(t *testing.T) (Service, *mockXPStore, *mockFlagStore, *testClock) {
	t.Helper()

	xp := &mockXPStore{}
	flags := &mockFlagStore{}
	clock := &testClock{now: time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)}

	svc := NewService(Config{
		XPStore:     xp,
		PlanStore:   &mockPlanStore{plan: testPlan()},
		WeeklyFlags: flags,
		Now:         clock.Now,
	})
	return svc, xp, flags, clock
}

func TestProgress(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, xp, _, _ := newTestService(t)
	userID := uuid.New()

	xp.setSums(map[domain.Category]float64{
		domain.CategoryGames: 50, // above the 40 target: capped
		domain.CategoryTasks: 20,
	})

	snapshot, err := svc.Progress(ctx, userID)
	require.NoError(t, err)

	byCategory := make(map[domain.Category]domain.CappedProgress)
	for _, p := range snapshot.Categories {
		byCategory[p.Category] = p
	}

	games := byCategory[domain.CategoryGames]
	assert.Equal(t, 50.0, games.Raw)
	assert.Equal(t, 40.0, games.Capped)
	assert.Equal(t, 100.0, games.ProgressPct)
	assert.True(t, games.Complete)

	tasks := byCategory[domain.CategoryTasks]
	assert.Equal(t, 50.0, tasks.ProgressPct)
	assert.False(t, tasks.Complete)

	// Total counts raw overflow: 50+20=70 of 100.
	assert.Equal(t, 70.0, snapshot.Total.Capped)
	assert.False(t, snapshot.Total.Complete)
	assert.False(t, snapshot.CelebrationPending)
}

func TestProgressServesStableSnapshotOnFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, xp, _, _ := newTestService(t)
	userID := uuid.New()

	xp.setSums(map[domain.Category]float64{domain.CategoryGames: 30})
	first, err := svc.Progress(ctx, userID)
	require.NoError(t, err)

	// A broken refresh returns the previous good snapshot, not an error and
	// not zeroed data.
	xp.fail(errors.New("connection reset"))
	second, err := svc.Progress(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// With no stable snapshot to fall back to, the error surfaces.
	svc.Invalidate(userID)
	_, err = svc.Progress(ctx, userID)
	assert.Error(t, err)
}

func TestProgressStableSnapshotExpiresAtWeekBoundary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, xp, _, clock := newTestService(t)
	userID := uuid.New()

	xp.setSums(map[domain.Category]float64{domain.CategoryGames: 30})
	_, err := svc.Progress(ctx, userID)
	require.NoError(t, err)

	// Last week's snapshot must never leak into a new ISO week.
	clock.Advance(7 * 24 * time.Hour)
	xp.fail(errors.New("connection reset"))
	_, err = svc.Progress(ctx, userID)
	assert.Error(t, err)
}

func TestCelebrationPendingOnceAWeek(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, xp, _, clock := newTestService(t)
	userID := uuid.New()

	xp.setSums(map[domain.Category]float64{
		domain.CategoryGames: 60,
		domain.CategoryTasks: 50,
	})

	snapshot, err := svc.Progress(ctx, userID)
	require.NoError(t, err)
	assert.True(t, snapshot.Total.Complete)
	assert.True(t, snapshot.CelebrationPending)

	require.NoError(t, svc.MarkCelebrated(ctx, userID))

	snapshot, err = svc.Progress(ctx, userID)
	require.NoError(t, err)
	assert.True(t, snapshot.Total.Complete)
	assert.False(t, snapshot.CelebrationPending, "celebration fires once per week")

	// The flag is scoped to the ISO week: next week it is pending again.
	clock.Advance(7 * 24 * time.Hour)
	snapshot, err = svc.Progress(ctx, userID)
	require.NoError(t, err)
	assert.True(t, snapshot.CelebrationPending)
}

func TestProgressWithoutPlan(t *testing.T) {
	t.Parallel()

	svc := NewService(Config{
		XPStore:     &mockXPStore{},
		PlanStore:   &mockPlanStore{},
		WeeklyFlags: &mockFlagStore{},
	})

	_, err := svc.Progress(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoPlan)
}
