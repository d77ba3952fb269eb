// Package main implements the entry point for the clarity peak lab server,
// which meters weekly training progress, gates cognitively demanding content
// and accounts for recovery sessions.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/api"
	apimiddleware "github.com/boulaiscore/clarity-peak-lab-sub004/internal/api/middleware"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/config"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain/engine"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/platform/logger"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/platform/postgres"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/auth"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/gating"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/override"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/progress"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/reminder"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/session"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/task"
	"github.com/boulaiscore/clarity-peak-lab-sub004/migrations"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := openDatabase(cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	if err := applyMigrations(db); err != nil {
		return err
	}

	params := engineParams(cfg.Engine)

	// Stores
	xpStore := postgres.NewPostgresXPStore(db, appLogger)
	sessionStore := postgres.NewPostgresSessionStore(db, appLogger)
	overrideStore := postgres.NewPostgresOverrideStore(db, appLogger)
	planStore := postgres.NewPostgresPlanStore(db, appLogger)
	flagStore := postgres.NewPostgresWeeklyFlagStore(db, appLogger)

	// Services
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}

	sessionManager := session.NewManager(session.Config{
		SessionStore: sessionStore,
		XPStore:      xpStore,
		Params:       params,
		Logger:       appLogger,
	})
	overrideLedger := override.NewLedger(override.Config{
		OverrideStore: overrideStore,
		DB:            db,
		Params:        params,
		Logger:        appLogger,
	})
	progressService := progress.NewService(progress.Config{
		XPStore:     xpStore,
		PlanStore:   planStore,
		WeeklyFlags: flagStore,
		Logger:      appLogger,
	})
	gatingService := gating.NewService(gating.Config{
		XPStore: xpStore,
		Params:  params,
		Logger:  appLogger,
	})
	reminderService := reminder.NewService(reminder.Config{
		XPStore:   xpStore,
		PlanStore: planStore,
		Logger:    appLogger,
	})

	// Background maintenance
	runner := task.NewRunner(task.RunnerConfig{WorkerCount: cfg.Task.WorkerCount}, appLogger)
	sweepInterval := time.Duration(cfg.Task.SweepIntervalMinutes) * time.Minute
	err = runner.SchedulePeriodic(sweepInterval, func() task.Task {
		return task.NewSessionSweepTask(task.SessionSweepConfig{
			SessionStore: sessionStore,
			Horizon:      time.Duration(cfg.Task.StaleSessionHours) * time.Hour,
			Logger:       appLogger,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}
	runner.Start()
	defer runner.Stop()

	// HTTP surface
	router := api.NewRouter(apimiddleware.NewAuthMiddleware(jwtService), api.Handlers{
		Sessions:   api.NewSessionHandler(sessionManager, appLogger),
		Progress:   api.NewProgressHandler(progressService, reminderService, appLogger),
		Gating:     api.NewGatingHandler(gatingService, appLogger),
		Difficulty: api.NewDifficultyHandler(xpStore, planStore, params, appLogger),
		Overrides:  api.NewOverrideHandler(overrideLedger, appLogger),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}

// openDatabase opens and verifies the connection pool.
func openDatabase(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// applyMigrations brings the schema up to date from the embedded files.
func applyMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// engineParams maps the optional config overrides onto the engine defaults.
func engineParams(cfg config.EngineConfig) *engine.Params {
	return engine.NewParams(engine.ParamsConfig{
		MinSessionSeconds:         cfg.MinSessionSeconds,
		OverrideDailyLimit:        cfg.OverrideDailyLimit,
		OverrideWeeklyLimit:       cfg.OverrideWeeklyLimit,
		OverridePenalty:           cfg.OverridePenalty,
		MinMeaningfulXPFraction:   cfg.MinMeaningfulXPFraction,
		DifficultyCeilingRecovery: cfg.DifficultyCeilingRecovery,
	})
}
