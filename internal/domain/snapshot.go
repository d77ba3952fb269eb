package domain

import (
	"fmt"
	"math"
)

// GlobalMode represents the coarse cognitive-state mode computed upstream of
// the engine. It is the highest-priority gating input: RECOVERY mode places
// every content type under protection regardless of individual scores.
type GlobalMode string

// Known global modes.
const (
	// GlobalModeFull means the user is operating at full capacity.
	GlobalModeFull GlobalMode = "FULL"

	// GlobalModeLowBandwidth means capacity is reduced but training is allowed.
	GlobalModeLowBandwidth GlobalMode = "LOW_BANDWIDTH"

	// GlobalModeRecovery means the user should not train; all content is
	// placed under protection until recovery improves.
	GlobalModeRecovery GlobalMode = "RECOVERY"
)

// IsValid reports whether the mode is one of the known global modes.
func (m GlobalMode) IsValid() bool {
	switch m {
	case GlobalModeFull, GlobalModeLowBandwidth, GlobalModeRecovery:
		return true
	default:
		return false
	}
}

// CognitiveSnapshot is the cognitive-state input to gating and difficulty
// decisions. It is produced externally once per evaluation and is immutable
// within a single decision. All scalar scores are on a 0-100 scale.
type CognitiveSnapshot struct {
	RecoveryBuffer    float64    `json:"recovery_buffer"`
	ReasoningCapacity float64    `json:"reasoning_capacity"`
	Sharpness         float64    `json:"sharpness"`
	Readiness         float64    `json:"readiness"`
	GlobalMode        GlobalMode `json:"global_mode"`
}

// Validate checks that every score is a real number in [0,100] and the global
// mode is known. Returns an error wrapping ErrInvalidSnapshot otherwise.
// Callers must treat a validation failure as fatal for the evaluation rather
// than substituting a default snapshot.
func (s CognitiveSnapshot) Validate() error {
	scores := map[string]float64{
		"recovery_buffer":    s.RecoveryBuffer,
		"reasoning_capacity": s.ReasoningCapacity,
		"sharpness":          s.Sharpness,
		"readiness":          s.Readiness,
	}
	for name, v := range scores {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidSnapshot, name)
		}
		if v < 0 || v > 100 {
			return fmt.Errorf("%w: %s %.2f outside [0,100]", ErrInvalidSnapshot, name, v)
		}
	}

	if !s.GlobalMode.IsValid() {
		return fmt.Errorf("%w: unknown global mode %q", ErrInvalidSnapshot, s.GlobalMode)
	}

	return nil
}
