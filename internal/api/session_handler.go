// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/api/shared"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/platform/logger"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/session"
)

// SessionHandler handles recovery-session HTTP requests
type SessionHandler struct {
	sessions session.Manager
	logger   *slog.Logger
	now      func() time.Time
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions session.Manager, log *slog.Logger) *SessionHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		sessions: sessions,
		logger:   log.With(slog.String("component", "session_handler")),
		now:      time.Now,
	}
}

// requestUserID extracts the authenticated user ID set by the auth middleware.
func requestUserID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

// StartSession handles POST /sessions requests
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r, log)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session mode")
		return
	}

	started, err := h.sessions.Start(r.Context(), userID, domain.SessionMode(req.Mode))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("recovery session started",
		slog.String("user_id", userID.String()),
		slog.String("session_id", started.ID.String()),
		slog.String("mode", string(started.Mode)))
	shared.RespondWithJSON(w, r, http.StatusCreated, NewSessionResponse(started, h.now()))
}

// GetActiveSession handles GET /sessions/current requests
func (h *SessionHandler) GetActiveSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r, log)
	if !ok {
		return
	}

	active, err := h.sessions.Active(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewSessionResponse(active, h.now()))
}

// ReportViolation handles POST /sessions/current/violation requests
func (h *SessionHandler) ReportViolation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r, log)
	if !ok {
		return
	}

	updated, err := h.sessions.ReportViolation(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("session violation reported",
		slog.String("user_id", userID.String()),
		slog.Int("violation_count", updated.ViolationCount))
	shared.RespondWithJSON(w, r, http.StatusOK, NewSessionResponse(updated, h.now()))
}

// CompleteSession handles POST /sessions/current/complete requests
func (h *SessionHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r, log)
	if !ok {
		return
	}

	completed, err := h.sessions.Complete(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("recovery session completed",
		slog.String("user_id", userID.String()),
		slog.Int("duration_seconds", completed.DurationSeconds))
	shared.RespondWithJSON(w, r, http.StatusOK, NewSessionResponse(completed, h.now()))
}

// CancelSession handles POST /sessions/current/cancel requests
func (h *SessionHandler) CancelSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r, log)
	if !ok {
		return
	}

	if err := h.sessions.Cancel(r.Context(), userID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("recovery session cancelled", slog.String("user_id", userID.String()))
	w.WriteHeader(http.StatusNoContent)
}
