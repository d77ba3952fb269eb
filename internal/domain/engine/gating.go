package engine

import (
	"fmt"
	"strings"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
)

// GatingStatus is the access decision for one content type.
type GatingStatus string

// Known gating statuses.
const (
	// GatingEnabled means the content is accessible.
	GatingEnabled GatingStatus = "ENABLED"

	// GatingLocked means the content is blocked by a threshold or cap.
	GatingLocked GatingStatus = "LOCKED"

	// GatingProtection means the content is blocked because the user is in
	// recovery-protective mode, regardless of individual thresholds.
	GatingProtection GatingStatus = "PROTECTION"
)

// ReasonCode explains a gating decision. Cap reasons are composed via
// CapReachedReason so the scope and content type stay machine-readable.
type ReasonCode string

// Known reason codes.
const (
	ReasonNone            ReasonCode = "NONE"
	ReasonRecoveryTooLow  ReasonCode = "RECOVERY_TOO_LOW"
	ReasonSharpnessTooLow ReasonCode = "SHARPNESS_TOO_LOW"
	ReasonReadinessTooLow ReasonCode = "READINESS_TOO_LOW"
)

// Cap scopes used when composing cap-reached reason codes.
const (
	CapScopeDaily  = "DAILY"
	CapScopeWeekly = "WEEKLY"
)

// CapReachedReason composes the reason code for an exhausted consumption cap,
// e.g. CAP_REACHED_DAILY_SYSTEM1_GAMES.
func CapReachedReason(scope, contentKey string) ReasonCode {
	return ReasonCode(fmt.Sprintf("CAP_REACHED_%s_%s", scope, strings.ToUpper(contentKey)))
}

// IsCapReason reports whether the reason code denotes an exhausted cap.
func (r ReasonCode) IsCapReason() bool {
	return strings.HasPrefix(string(r), "CAP_REACHED_")
}

// GatingResult is the outcome of evaluating one content type. It is computed
// fresh on every query and never persisted.
type GatingResult struct {
	ContentKey    string       `json:"content_key"`
	Status        GatingStatus `json:"status"`
	Reason        ReasonCode   `json:"reason"`
	UnlockActions []string     `json:"unlock_actions"`
}

// Evaluate decides whether a content type is accessible given the current
// cognitive snapshot and its consumption counts. The checks run in priority
// order and the first match wins:
//
//  1. RECOVERY global mode places the content under PROTECTION outright.
//  2. Recovery buffer below the content's minimum locks it.
//  3. Sharpness below the content's minimum locks it.
//  4. Readiness below the content's minimum locks it.
//  5. An exhausted daily or weekly consumption cap locks it.
//
// Otherwise the content is ENABLED. The snapshot must be validated by the
// caller; Evaluate returns an error for a malformed snapshot and is total
// for every numerically valid input.
func Evaluate(
	ct domain.ContentType,
	snapshot domain.CognitiveSnapshot,
	usage domain.ContentUsage,
) (GatingResult, error) {
	if err := snapshot.Validate(); err != nil {
		return GatingResult{}, err
	}

	decide := func(status GatingStatus, reason ReasonCode) GatingResult {
		return GatingResult{
			ContentKey:    ct.Key,
			Status:        status,
			Reason:        reason,
			UnlockActions: UnlockActions(reason),
		}
	}

	// Recovery-protective gating overrides all other checks.
	if snapshot.GlobalMode == domain.GlobalModeRecovery {
		return decide(GatingProtection, ReasonRecoveryTooLow), nil
	}

	if ct.MinRecovery > 0 && snapshot.RecoveryBuffer < ct.MinRecovery {
		return decide(GatingLocked, ReasonRecoveryTooLow), nil
	}

	if ct.MinSharpness > 0 && snapshot.Sharpness < ct.MinSharpness {
		return decide(GatingLocked, ReasonSharpnessTooLow), nil
	}

	if ct.MinReadiness > 0 && snapshot.Readiness < ct.MinReadiness {
		return decide(GatingLocked, ReasonReadinessTooLow), nil
	}

	if ct.DailyCap > 0 && usage.TodayCount >= ct.DailyCap {
		return decide(GatingLocked, CapReachedReason(CapScopeDaily, ct.Key)), nil
	}

	if ct.WeeklyCap > 0 && usage.WeekCount >= ct.WeeklyCap {
		return decide(GatingLocked, CapReachedReason(CapScopeWeekly, ct.Key)), nil
	}

	return decide(GatingEnabled, ReasonNone), nil
}

// UnlockActions returns the remediation hints for a reason code. The mapping
// is a pure lookup so the UI copy stays stable and testable.
func UnlockActions(reason ReasonCode) []string {
	switch reason {
	case ReasonNone:
		return nil
	case ReasonRecoveryTooLow:
		return []string{
			"Build recovery through a Detox or Walk session",
		}
	case ReasonSharpnessTooLow:
		return []string{
			"Sharpness rebuilds with rest",
			"Try an easier exercise first",
		}
	case ReasonReadinessTooLow:
		return []string{
			"Readiness improves after sleep and recovery",
		}
	default:
		if reason.IsCapReason() {
			return []string{
				"This limit resets at the next day or week boundary",
			}
		}
		return nil
	}
}
