package engine

import (
	"errors"
	"math"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
)

// Difficulty errors.
var (
	// ErrDifficultyLocked is returned when selecting a difficulty that a
	// global safety rule has locked.
	ErrDifficultyLocked = errors.New("difficulty is locked")

	// ErrUnknownDifficulty is returned when selecting a difficulty that is
	// not part of the offered options.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// Difficulty is one of the selectable training difficulty levels.
type Difficulty string

// Known difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists all difficulties in ascending order of load.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ZoneStatus places the week's training volume relative to the plan's
// optimal range.
type ZoneStatus string

// Known zone statuses.
const (
	// ZoneBuilding means not enough meaningful training has occurred yet,
	// or volume is below the optimal range.
	ZoneBuilding ZoneStatus = "building"

	// ZoneWithin means volume sits inside the optimal range.
	ZoneWithin ZoneStatus = "within"

	// ZoneAbove means volume exceeds the optimal range (overtraining risk).
	ZoneAbove ZoneStatus = "above"
)

// Zone is the display-ready recommendation: a status plus its fixed
// label/description pair.
type Zone struct {
	Status      ZoneStatus `json:"status"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
}

// zoneCopy is the fixed label/description lookup per status. The mapping is
// a pure lookup, not computed.
var zoneCopy = map[ZoneStatus]Zone{
	ZoneBuilding: {
		Status:      ZoneBuilding,
		Label:       "Building capacity",
		Description: "Keep training to reach your optimal zone.",
	},
	ZoneWithin: {
		Status:      ZoneWithin,
		Label:       "Optimal zone",
		Description: "Your weekly volume sits in the optimal range.",
	},
	ZoneAbove: {
		Status:      ZoneAbove,
		Label:       "Overtraining risk",
		Description: "Ease off and prioritize recovery this week.",
	},
}

// MinMeaningfulXP returns the XP floor below which the recommender reports
// the building zone regardless of range membership.
func MinMeaningfulXP(planXPTarget int, params *Params) int {
	return int(math.Round(params.MinMeaningfulXPFraction * float64(planXPTarget)))
}

// Recommend places weeklyXP relative to the plan's optimal range.
//
// Priority order:
//
//  1. Below the minimum-meaningful floor the zone is always building, which
//     prevents "optimal" from showing before enough training has occurred.
//  2. Above the range maximum the zone is above (overtraining risk).
//  3. Inside the range the zone is within.
//  4. Otherwise the zone is building.
func Recommend(weeklyXP int, optimalRange domain.XPRange, planXPTarget int, params *Params) Zone {
	switch {
	case weeklyXP < MinMeaningfulXP(planXPTarget, params):
		return zoneCopy[ZoneBuilding]
	case weeklyXP > optimalRange.Max:
		return zoneCopy[ZoneAbove]
	case optimalRange.Contains(weeklyXP):
		return zoneCopy[ZoneWithin]
	default:
		return zoneCopy[ZoneBuilding]
	}
}

// OptionStatus marks a difficulty option's availability.
type OptionStatus string

// Known option statuses.
const (
	OptionRecommended OptionStatus = "recommended"
	OptionAvailable   OptionStatus = "available"
	OptionLocked      OptionStatus = "locked"
)

// DifficultyOption is one selectable difficulty with its availability.
type DifficultyOption struct {
	Difficulty Difficulty   `json:"difficulty"`
	Status     OptionStatus `json:"status"`
	LockReason string       `json:"lock_reason,omitempty"`
}

// suggestedDifficulty maps a zone status to the difficulty the product
// suggests: easy while building, medium in the optimal zone, and easy again
// under overtraining risk to pull volume back down.
func suggestedDifficulty(status ZoneStatus) Difficulty {
	switch status {
	case ZoneWithin:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

// Options produces the difficulty option list for a zone status and
// snapshot. Exactly one option is recommended; hard is locked outright when
// the recovery buffer falls below the configured ceiling threshold.
func Options(status ZoneStatus, snapshot domain.CognitiveSnapshot, params *Params) []DifficultyOption {
	recommended := suggestedDifficulty(status)
	hardLocked := snapshot.RecoveryBuffer < params.DifficultyCeilingRecovery ||
		snapshot.GlobalMode == domain.GlobalModeRecovery

	options := make([]DifficultyOption, 0, len(Difficulties()))
	for _, d := range Difficulties() {
		option := DifficultyOption{Difficulty: d, Status: OptionAvailable}

		if d == DifficultyHard && hardLocked {
			option.Status = OptionLocked
			option.LockReason = "Recovery too low for hard training"
		} else if d == recommended {
			option.Status = OptionRecommended
		}

		options = append(options, option)
	}
	return options
}

// SelectDifficulty validates a user's difficulty choice against the offered
// options. Choosing a locked option is an error; choosing an available,
// non-recommended option is permitted but reported as an override so the
// caller can flag it to telemetry. This flag is silent and unrelated to the
// rate-limited override ledger.
func SelectDifficulty(chosen Difficulty, options []DifficultyOption) (override bool, err error) {
	for _, option := range options {
		if option.Difficulty != chosen {
			continue
		}
		switch option.Status {
		case OptionLocked:
			return false, ErrDifficultyLocked
		case OptionRecommended:
			return false, nil
		default:
			return true, nil
		}
	}
	return false, ErrUnknownDifficulty
}
