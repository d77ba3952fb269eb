package domain

// ContentType describes one gated content category (a game family or task
// kind) together with its cognitive thresholds and consumption caps. The
// gating engine evaluates each content type independently.
type ContentType struct {
	// Key is the stable machine identifier, e.g. "system1_games".
	Key string `json:"key"`

	// Label is the human-readable name shown by the UI.
	Label string `json:"label"`

	// Category is the XP category this content contributes to.
	Category Category `json:"category"`

	// Minimum cognitive scores required for access, on the 0-100 scale.
	// A zero threshold disables that check.
	MinRecovery  float64 `json:"min_recovery"`
	MinSharpness float64 `json:"min_sharpness"`
	MinReadiness float64 `json:"min_readiness"`

	// DailyCap and WeeklyCap bound how many sessions of this content may be
	// consumed per day and per ISO week. A zero cap means uncapped.
	DailyCap  int `json:"daily_cap"`
	WeeklyCap int `json:"weekly_cap"`
}

// ContentUsage is the consumption count input to cap checks, supplied by the
// caller from the activity store.
type ContentUsage struct {
	TodayCount int `json:"today_count"`
	WeekCount  int `json:"week_count"`
}
