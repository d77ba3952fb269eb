// Package engine contains the pure decision rules of the cognitive-load
// engine: weekly XP capping, content gating, difficulty recommendation and
// the override allowance arithmetic. Every function here is a pure function
// of its inputs; persistence and clocks live in the service layer.
package engine

import (
	"math"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
)

// cappedProgress computes the derived progress for one raw/target pair.
// A target of zero is treated as already complete at 100%.
func cappedProgress(category domain.Category, raw float64, target int) domain.CappedProgress {
	if target <= 0 {
		return domain.CappedProgress{
			Category:    category,
			Raw:         raw,
			Capped:      0,
			ProgressPct: 100,
			Complete:    true,
		}
	}

	capped := math.Min(raw, float64(target))

	pct := capped / float64(target) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	return domain.CappedProgress{
		Category:    category,
		Raw:         raw,
		Capped:      capped,
		ProgressPct: pct,
		Complete:    capped >= float64(target),
	}
}

// CategoryProgress computes the capped progress for every known category
// given the week's ledger and the plan. Categories without raw XP report
// zero progress rather than being omitted.
func CategoryProgress(ledger domain.WeeklyLedger, plan *domain.TrainingPlan) []domain.CappedProgress {
	progress := make([]domain.CappedProgress, 0, len(domain.Categories()))
	for _, category := range domain.Categories() {
		progress = append(progress, cappedProgress(
			category,
			ledger.Raw(category),
			plan.CategoryTarget(category),
		))
	}
	return progress
}

// TotalProgress computes the whole-week capped progress. The total cap is
// evaluated against the combined raw sum independently of the per-category
// caps: a category that already hit its own target keeps contributing its
// overflow toward the total until the weekly target is reached.
func TotalProgress(ledger domain.WeeklyLedger, plan *domain.TrainingPlan) domain.CappedProgress {
	return cappedProgress(domain.CategoryTotal, ledger.RawTotal(), plan.WeeklyXPTarget)
}
