package domain

import "time"

// WeeklyLedger aggregates the raw XP earned per category within one ISO week.
// Raw XP grows monotonically within the week; the window resets logically at
// the ISO week boundary by querying a new WeekStart.
type WeeklyLedger struct {
	RawXP     map[Category]float64 `json:"raw_xp"`
	WeekStart time.Time            `json:"week_start"`
}

// Raw returns the raw XP recorded for a category, or zero when none exists.
func (l WeeklyLedger) Raw(category Category) float64 {
	return l.RawXP[category]
}

// RawTotal returns the combined raw XP across all categories.
func (l WeeklyLedger) RawTotal() float64 {
	var total float64
	for _, xp := range l.RawXP {
		total += xp
	}
	return total
}

// CappedProgress is the derived, display-ready progress for one category or
// for the weekly total. It is computed fresh on every query and never stored.
type CappedProgress struct {
	Category    Category `json:"category"`
	Raw         float64  `json:"raw"`
	Capped      float64  `json:"capped"`
	ProgressPct float64  `json:"progress_pct"`
	Complete    bool     `json:"complete"`
}

// CategoryTotal is the pseudo-category used for whole-week progress.
const CategoryTotal Category = "total"
