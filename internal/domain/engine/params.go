package engine

import (
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
)

// Params defines all configurable policy parameters for the engine.
// The numeric values are policy knobs, not load-bearing for correctness.
type Params struct {
	// MinSessionSeconds is the minimum elapsed time, measured from the most
	// recent timer reset, before a recovery session may complete.
	MinSessionSeconds int

	// Override allowance limits.
	OverrideDailyLimit  int
	OverrideWeeklyLimit int

	// OverridePenalty is subtracted from reasoning capacity for the
	// remainder of the day after a successful override.
	OverridePenalty float64

	// MinMeaningfulXPFraction of the plan's weekly XP target must be earned
	// before the difficulty recommender will report the optimal zone.
	MinMeaningfulXPFraction float64

	// DifficultyCeilingRecovery is the recovery-buffer score below which the
	// hard difficulty is locked outright.
	DifficultyCeilingRecovery float64

	// ContentTypes are the gated content types known to the engine.
	ContentTypes []domain.ContentType
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values fall back to the defaults.
type ParamsConfig struct {
	MinSessionSeconds         int
	OverrideDailyLimit        int
	OverrideWeeklyLimit       int
	OverridePenalty           float64
	MinMeaningfulXPFraction   float64
	DifficultyCeilingRecovery float64
	ContentTypes              []domain.ContentType
}

// NewDefaultParams creates a new Params instance with default policy values.
func NewDefaultParams() *Params {
	return &Params{
		// 30 minutes
		MinSessionSeconds: 1800,

		OverrideDailyLimit:  1,
		OverrideWeeklyLimit: 3,
		OverridePenalty:     15.0,

		MinMeaningfulXPFraction:   0.35,
		DifficultyCeilingRecovery: 30.0,

		ContentTypes: []domain.ContentType{
			{
				Key:          "system1_games",
				Label:        "System 1 games",
				Category:     domain.CategoryGames,
				MinRecovery:  20,
				MinSharpness: 30,
				DailyCap:     3,
				WeeklyCap:    15,
			},
			{
				Key:          "system2_games",
				Label:        "System 2 games",
				Category:     domain.CategoryGames,
				MinRecovery:  40,
				MinSharpness: 50,
				MinReadiness: 40,
				DailyCap:     2,
				WeeklyCap:    10,
			},
			{
				Key:          "reading_tasks",
				Label:        "Reading tasks",
				Category:     domain.CategoryTasks,
				MinRecovery:  25,
				MinSharpness: 35,
				MinReadiness: 30,
			},
			{
				Key:          "listening_tasks",
				Label:        "Listening tasks",
				Category:     domain.CategoryTasks,
				MinRecovery:  15,
				MinSharpness: 25,
				MinReadiness: 20,
			},
		},
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinSessionSeconds > 0 {
		params.MinSessionSeconds = config.MinSessionSeconds
	}
	if config.OverrideDailyLimit > 0 {
		params.OverrideDailyLimit = config.OverrideDailyLimit
	}
	if config.OverrideWeeklyLimit > 0 {
		params.OverrideWeeklyLimit = config.OverrideWeeklyLimit
	}
	if config.OverridePenalty > 0 {
		params.OverridePenalty = config.OverridePenalty
	}
	if config.MinMeaningfulXPFraction > 0 {
		params.MinMeaningfulXPFraction = config.MinMeaningfulXPFraction
	}
	if config.DifficultyCeilingRecovery > 0 {
		params.DifficultyCeilingRecovery = config.DifficultyCeilingRecovery
	}
	if len(config.ContentTypes) > 0 {
		params.ContentTypes = config.ContentTypes
	}

	return params
}

// ContentType looks up a configured content type by key.
// The second return value reports whether the key is known.
func (p *Params) ContentType(key string) (domain.ContentType, bool) {
	for _, ct := range p.ContentTypes {
		if ct.Key == key {
			return ct, true
		}
	}
	return domain.ContentType{}, false
}
