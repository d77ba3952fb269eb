package api

import (
	"log/slog"
	"net/http"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/api/shared"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/platform/logger"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/override"
)

// OverrideHandler handles override-ledger HTTP requests
type OverrideHandler struct {
	ledger override.Ledger
	logger *slog.Logger
}

// NewOverrideHandler creates a new OverrideHandler
func NewOverrideHandler(ledger override.Ledger, log *slog.Logger) *OverrideHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for OverrideHandler")
	}

	return &OverrideHandler{
		ledger: ledger,
		logger: log.With(slog.String("component", "override_handler")),
	}
}

// GetAllowance handles GET /overrides/allowance requests
func (h *OverrideHandler) GetAllowance(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r, log)
	if !ok {
		return
	}

	allowance, err := h.ledger.Allowance(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, allowance)
}

// RecordOverride handles POST /overrides requests
func (h *OverrideHandler) RecordOverride(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r, log)
	if !ok {
		return
	}

	var req RecordOverrideRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid override request")
		return
	}

	record, err := h.ledger.RecordOverride(r.Context(), userID, req.TaskID, domain.Category(req.Category))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("override recorded via API",
		slog.String("user_id", userID.String()),
		slog.String("task_id", record.TaskID))

	shared.RespondWithJSON(w, r, http.StatusCreated, OverrideResponse{
		ID:         record.ID.String(),
		TaskID:     record.TaskID,
		Category:   string(record.Category),
		OccurredAt: record.OccurredAt,
	})
}
