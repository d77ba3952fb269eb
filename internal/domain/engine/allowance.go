package engine

// Allowance is the computed state of the override allowance at one instant.
type Allowance struct {
	TodayCount   int  `json:"today_count"`
	WeekCount    int  `json:"week_count"`
	CanOverride  bool `json:"can_override"`
	PenaltyToday bool `json:"penalty_today"`
}

// CanOverride reports whether another override is permitted given today's and
// this ISO week's distinct override counts.
func CanOverride(todayCount, weekCount int, params *Params) bool {
	return todayCount < params.OverrideDailyLimit && weekCount < params.OverrideWeeklyLimit
}

// AdjustedCapacity applies the post-override capacity penalty: for the
// remainder of a day containing a successful override, reasoning capacity is
// reduced by the configured penalty. The penalty decays automatically at the
// next day boundary because it is recomputed from the override log rather
// than stored. The result is clamped at zero.
func AdjustedCapacity(base float64, overriddenToday bool, params *Params) float64 {
	if !overriddenToday {
		return base
	}

	adjusted := base - params.OverridePenalty
	if adjusted < 0 {
		return 0
	}
	return adjusted
}
