package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/api/middleware"
)

// Handlers bundles the route handlers wired by NewRouter.
type Handlers struct {
	Sessions   *SessionHandler
	Progress   *ProgressHandler
	Gating     *GatingHandler
	Difficulty *DifficultyHandler
	Overrides  *OverrideHandler
}

// NewRouter assembles the chi router with shared middleware and the
// authenticated API routes.
func NewRouter(authMiddleware *middleware.AuthMiddleware, handlers Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.Trace)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/progress", handlers.Progress.GetProgress)
		r.Post("/progress/celebration", handlers.Progress.MarkCelebrated)
		r.Get("/progress/reminder", handlers.Progress.GetReminder)

		r.Get("/gating", handlers.Gating.GetGating)

		r.Get("/difficulty", handlers.Difficulty.GetDifficulty)
		r.Post("/difficulty/select", handlers.Difficulty.SelectDifficulty)

		r.Post("/sessions", handlers.Sessions.StartSession)
		r.Get("/sessions/current", handlers.Sessions.GetActiveSession)
		r.Post("/sessions/current/violation", handlers.Sessions.ReportViolation)
		r.Post("/sessions/current/complete", handlers.Sessions.CompleteSession)
		r.Post("/sessions/current/cancel", handlers.Sessions.CancelSession)

		r.Get("/overrides/allowance", handlers.Overrides.GetAllowance)
		r.Post("/overrides", handlers.Overrides.RecordOverride)
	})

	return r
}
