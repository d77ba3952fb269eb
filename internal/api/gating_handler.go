package api

import (
	"log/slog"
	"net/http"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/api/shared"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/platform/logger"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/gating"
)

// GatingHandler handles content-gating HTTP requests
type GatingHandler struct {
	gating gating.Service
	logger *slog.Logger
}

// NewGatingHandler creates a new GatingHandler
func NewGatingHandler(gatingService gating.Service, log *slog.Logger) *GatingHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GatingHandler")
	}

	return &GatingHandler{
		gating: gatingService,
		logger: log.With(slog.String("component", "gating_handler")),
	}
}

// GetGating handles GET /gating requests. The caller supplies the current
// cognitive snapshot as query parameters; the response carries one decision
// per configured content type.
func (h *GatingHandler) GetGating(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r, log)
	if !ok {
		return
	}

	snapshot, err := SnapshotFromQuery(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	results, err := h.gating.EvaluateAll(r.Context(), userID, snapshot)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, results)
}
