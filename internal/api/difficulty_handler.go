package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/api/shared"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain/engine"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/platform/logger"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/store"
)

// DifficultyResponse is the full difficulty recommendation for one user.
type DifficultyResponse struct {
	Zone            engine.Zone               `json:"zone"`
	WeeklyXP        int                       `json:"weekly_xp"`
	MinMeaningfulXP int                       `json:"min_meaningful_xp"`
	Options         []engine.DifficultyOption `json:"options"`
}

// DifficultyHandler handles difficulty recommendation HTTP requests
type DifficultyHandler struct {
	xp     store.XPStore
	plans  store.PlanStore
	params *engine.Params
	logger *slog.Logger
	now    func() time.Time
}

// NewDifficultyHandler creates a new DifficultyHandler
func NewDifficultyHandler(
	xp store.XPStore,
	plans store.PlanStore,
	params *engine.Params,
	log *slog.Logger,
) *DifficultyHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DifficultyHandler")
	}
	if params == nil {
		params = engine.NewDefaultParams()
	}

	return &DifficultyHandler{
		xp:     xp,
		plans:  plans,
		params: params,
		logger: log.With(slog.String("component", "difficulty_handler")),
		now:    time.Now,
	}
}

// recommendation computes the zone and option list for the user.
func (h *DifficultyHandler) recommendation(
	r *http.Request,
	userID uuid.UUID,
	snapshot domain.CognitiveSnapshot,
) (*DifficultyResponse, error) {
	plan, err := h.plans.GetPlanForUser(r.Context(), userID)
	if err != nil {
		return nil, err
	}

	now := h.now().UTC()
	rawXP, err := h.xp.SumXPByCategory(r.Context(), userID, domain.ISOWeekStart(now))
	if err != nil {
		return nil, err
	}

	ledger := domain.WeeklyLedger{RawXP: rawXP, WeekStart: domain.ISOWeekStart(now)}
	weeklyXP := int(ledger.RawTotal())

	zone := engine.Recommend(weeklyXP, plan.OptimalRange, plan.WeeklyXPTarget, h.params)
	options := engine.Options(zone.Status, snapshot, h.params)

	return &DifficultyResponse{
		Zone:            zone,
		WeeklyXP:        weeklyXP,
		MinMeaningfulXP: engine.MinMeaningfulXP(plan.WeeklyXPTarget, h.params),
		Options:         options,
	}, nil
}

// GetDifficulty handles GET /difficulty requests. The caller supplies the
// current cognitive snapshot as query parameters.
func (h *DifficultyHandler) GetDifficulty(w http.ResponseWriter, r *http.Request) {
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

	response, err := h.recommendation(r, userID, snapshot)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// SelectDifficulty handles POST /difficulty/select requests. The snapshot
// travels as query parameters alongside the JSON choice so the selection is
// validated against the same options the user was shown.
func (h *DifficultyHandler) SelectDifficulty(w http.ResponseWriter, r *http.Request) {
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

	var req SelectDifficultyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid difficulty")
		return
	}

	recommendation, err := h.recommendation(r, userID, snapshot)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	override, err := engine.SelectDifficulty(engine.Difficulty(req.Difficulty), recommendation.Options)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if override {
		log.Info("difficulty selected against recommendation",
			slog.String("user_id", userID.String()),
			slog.String("difficulty", req.Difficulty))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SelectDifficultyResponse{
		Difficulty: req.Difficulty,
		Override:   override,
	})
}
