package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
)

// StartSessionRequest is the request body for starting a recovery session.
type StartSessionRequest struct {
	Mode string `json:"mode" validate:"required,oneof=DETOX WALK"`
}

// SessionResponse is the API representation of a recovery session.
type SessionResponse struct {
	ID              string     `json:"id"`
	Mode            string     `json:"mode"`
	Status          string     `json:"status"`
	StartedAt       time.Time  `json:"started_at"`
	TimerResetAt    *time.Time `json:"timer_reset_at,omitempty"`
	ViolationCount  int        `json:"violation_count"`
	ElapsedSeconds  int        `json:"elapsed_seconds"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	DurationSeconds int        `json:"duration_seconds,omitempty"`
}

// NewSessionResponse converts a domain session to its API representation.
// Elapsed time is measured at the given instant.
func NewSessionResponse(s *domain.RecoverySession, now time.Time) SessionResponse {
	return SessionResponse{
		ID:              s.ID.String(),
		Mode:            string(s.Mode),
		Status:          string(s.Status),
		StartedAt:       s.StartedAt,
		TimerResetAt:    s.TimerResetAt,
		ViolationCount:  s.ViolationCount,
		ElapsedSeconds:  s.ElapsedSeconds(now),
		CompletedAt:     s.CompletedAt,
		DurationSeconds: s.DurationSeconds,
	}
}

// RecordOverrideRequest is the request body for recording an override.
type RecordOverrideRequest struct {
	TaskID   string `json:"task_id" validate:"required"`
	Category string `json:"category" validate:"required,oneof=games tasks recovery"`
}

// OverrideResponse is the API representation of a recorded override.
type OverrideResponse struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	Category   string    `json:"category"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SelectDifficultyRequest is the request body for selecting a difficulty.
type SelectDifficultyRequest struct {
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

// SelectDifficultyResponse reports the outcome of a difficulty selection.
type SelectDifficultyResponse struct {
	Difficulty string `json:"difficulty"`
	Override   bool   `json:"override"`
}

// SnapshotFromQuery builds a cognitive snapshot from request query
// parameters. GET endpoints receive the upstream-produced snapshot this way;
// any missing or malformed field maps to domain.ErrInvalidSnapshot.
func SnapshotFromQuery(r *http.Request) (domain.CognitiveSnapshot, error) {
	query := r.URL.Query()

	parse := func(name string) (float64, error) {
		raw := query.Get(name)
		if raw == "" {
			return 0, fmt.Errorf("%w: missing %s", domain.ErrInvalidSnapshot, name)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: malformed %s", domain.ErrInvalidSnapshot, name)
		}
		return value, nil
	}

	var snapshot domain.CognitiveSnapshot
	var err error
	if snapshot.RecoveryBuffer, err = parse("recovery_buffer"); err != nil {
		return domain.CognitiveSnapshot{}, err
	}
	if snapshot.ReasoningCapacity, err = parse("reasoning_capacity"); err != nil {
		return domain.CognitiveSnapshot{}, err
	}
	if snapshot.Sharpness, err = parse("sharpness"); err != nil {
		return domain.CognitiveSnapshot{}, err
	}
	if snapshot.Readiness, err = parse("readiness"); err != nil {
		return domain.CognitiveSnapshot{}, err
	}

	snapshot.GlobalMode = domain.GlobalMode(query.Get("global_mode"))
	if snapshot.GlobalMode == "" {
		snapshot.GlobalMode = domain.GlobalModeFull
	}

	if err := snapshot.Validate(); err != nil {
		return domain.CognitiveSnapshot{}, err
	}
	return snapshot, nil
}
