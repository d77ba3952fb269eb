package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain/engine"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/store"
)

// stubXPStore serves a fixed weekly sum.
type stubXPStore struct {
	sums map[domain.Category]float64
}

var _ store.XPStore = (*stubXPStore)(nil)

func (s *stubXPStore) AppendXP(ctx context.Context, event *domain.XPEvent) error { return nil }

func (s *stubXPStore) SumXPByCategory(ctx context.Context, userID uuid.UUID, weekStart time.Time) (map[domain.Category]float64, error) {
	return s.sums, nil
}

func (s *stubXPStore) SumXP(ctx context.Context, userID uuid.UUID, category domain.Category, weekStart time.Time) (float64, error) {
	return s.sums[category], nil
}

func (s *stubXPStore) CountContentUsage(ctx context.Context, userID uuid.UUID, contentKey string, since time.Time) (int, error) {
	return 0, nil
}

// stubPlanStore serves one plan for every user.
type stubPlanStore struct {
	plan *domain.TrainingPlan
}

var _ store.PlanStore = (*stubPlanStore)(nil)

func (s *stubPlanStore) GetPlan(ctx context.Context, id uuid.UUID) (*domain.TrainingPlan, error) {
	if s.plan == nil {
		return nil, store.ErrPlanNotFound
	}
	return s.plan, nil
}

func (s *stubPlanStore) GetPlanForUser(ctx context.Context, userID uuid.UUID) (*domain.TrainingPlan, error) {
	return s.GetPlan(ctx, uuid.Nil)
}

func difficultyTestPlan() *domain.TrainingPlan {
	return &domain.TrainingPlan{
		ID:             uuid.New(),
		Name:           "balanced",
		WeeklyXPTarget: 100,
		OptimalRange:   domain.XPRange{Min: 40, Max: 80},
	}
}

func newDifficultyHandler(sums map[domain.Category]float64) *DifficultyHandler {
	return NewDifficultyHandler(
		&stubXPStore{sums: sums},
		&stubPlanStore{plan: difficultyTestPlan()},
		nil,
		slog.Default(),
	)
}

func TestGetDifficultyWithinZone(t *testing.T) {
	t.Parallel()

	handler := newDifficultyHandler(map[domain.Category]float64{domain.CategoryGames: 50})

	w := httptest.NewRecorder()
	handler.GetDifficulty(w, authedRequest("GET", "/difficulty?"+snapshotQuery, ""))

	require.Equal(t, http.StatusOK, w.Code)

	var response DifficultyResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, engine.ZoneWithin, response.Zone.Status)
	assert.Equal(t, 50, response.WeeklyXP)
	assert.Equal(t, 35, response.MinMeaningfulXP)

	// Medium is recommended inside the optimal zone.
	for _, option := range response.Options {
		if option.Difficulty == engine.DifficultyMedium {
			assert.Equal(t, engine.OptionRecommended, option.Status)
		}
	}
}

func TestGetDifficultyBelowMeaningfulFloor(t *testing.T) {
	t.Parallel()

	// 30 XP is inside no zone yet: below round(0.35*100).
	handler := newDifficultyHandler(map[domain.Category]float64{domain.CategoryGames: 30})

	w := httptest.NewRecorder()
	handler.GetDifficulty(w, authedRequest("GET", "/difficulty?"+snapshotQuery, ""))

	require.Equal(t, http.StatusOK, w.Code)

	var response DifficultyResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, engine.ZoneBuilding, response.Zone.Status)
}

func TestSelectDifficultyLockedHard(t *testing.T) {
	t.Parallel()

	handler := newDifficultyHandler(map[domain.Category]float64{domain.CategoryGames: 50})

	// Recovery buffer below the hard ceiling of 30.
	query := "recovery_buffer=20&reasoning_capacity=70&sharpness=60&readiness=45"
	w := httptest.NewRecorder()
	handler.SelectDifficulty(w, authedRequest("POST", "/difficulty/select?"+query,
		`{"difficulty":"hard"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectDifficultyOverrideFlag(t *testing.T) {
	t.Parallel()

	handler := newDifficultyHandler(map[domain.Category]float64{domain.CategoryGames: 50})

	// Easy is available but medium is recommended within the zone, so
	// choosing easy reports a silent override.
	w := httptest.NewRecorder()
	handler.SelectDifficulty(w, authedRequest("POST", "/difficulty/select?"+snapshotQuery,
		`{"difficulty":"easy"}`))

	require.Equal(t, http.StatusOK, w.Code)

	var response SelectDifficultyResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.Override)
	assert.Equal(t, "easy", response.Difficulty)
}
