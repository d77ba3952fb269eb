package api

import (
	"errors"
	"net/http"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain/engine"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/auth"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/gating"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/override"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/progress"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/session"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Conflict errors
	case errors.Is(err, session.ErrAlreadyActive),
		errors.Is(err, store.ErrActiveSessionExists):
		return http.StatusConflict

	// Session completion below the minimum duration
	case errors.Is(err, session.ErrSessionTooShort):
		return http.StatusUnprocessableEntity

	// Override allowance exhausted
	case errors.Is(err, override.ErrOverrideLimit):
		return http.StatusTooManyRequests

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidSnapshot),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, engine.ErrDifficultyLocked),
		errors.Is(err, engine.ErrUnknownDifficulty),
		errors.Is(err, gating.ErrUnknownContent),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, session.ErrNoActiveSession),
		errors.Is(err, progress.ErrNoPlan),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, session.ErrAlreadyActive),
		errors.Is(err, store.ErrActiveSessionExists):
		return "A recovery session is already active"

	case errors.Is(err, session.ErrSessionTooShort):
		return "Session has not reached the minimum duration"

	case errors.Is(err, session.ErrNoActiveSession):
		return "No active recovery session"

	case errors.Is(err, override.ErrOverrideLimit):
		return "Override limit reached"

	case errors.Is(err, domain.ErrInvalidSnapshot):
		return "Invalid cognitive snapshot"

	case errors.Is(err, engine.ErrDifficultyLocked):
		return "Difficulty is locked"

	case errors.Is(err, engine.ErrUnknownDifficulty):
		return "Unknown difficulty"

	case errors.Is(err, gating.ErrUnknownContent):
		return "Unknown content type"

	case errors.Is(err, progress.ErrNoPlan):
		return "No training plan assigned"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}
