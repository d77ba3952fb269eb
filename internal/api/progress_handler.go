package api

import (
	"log/slog"
	"net/http"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/api/shared"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/platform/logger"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/progress"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/reminder"
)

// ProgressHandler handles weekly progress HTTP requests
type ProgressHandler struct {
	progress  progress.Service
	reminders reminder.Service
	logger    *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler
func NewProgressHandler(
	progressService progress.Service,
	reminderService reminder.Service,
	log *slog.Logger,
) *ProgressHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProgressHandler")
	}

	return &ProgressHandler{
		progress:  progressService,
		reminders: reminderService,
		logger:    log.With(slog.String("component", "progress_handler")),
	}
}

// GetProgress handles GET /progress requests
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r, log)
	if !ok {
		return
	}

	snapshot, err := h.progress.Progress(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, snapshot)
}

// MarkCelebrated handles POST /progress/celebration requests
func (h *ProgressHandler) MarkCelebrated(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r, log)
	if !ok {
		return
	}

	if err := h.progress.MarkCelebrated(r.Context(), userID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetReminder handles GET /progress/reminder requests
func (h *ProgressHandler) GetReminder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r, log)
	if !ok {
		return
	}

	result, err := h.reminders.Compute(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
