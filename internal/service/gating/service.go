// Package gating binds the gating rules to the XP event log: it fetches each
// content type's daily and weekly consumption counts and evaluates the access
// decision for the caller-provided cognitive snapshot.
package gating

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain/engine"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/store"
)

// Service evaluates gating decisions for every configured content type.
type Service interface {
	// EvaluateAll returns one GatingResult per configured content type, in
	// configuration order. The snapshot is produced upstream and validated
	// here; domain.ErrInvalidSnapshot is returned for malformed input.
	EvaluateAll(ctx context.Context, userID uuid.UUID, snapshot domain.CognitiveSnapshot) ([]engine.GatingResult, error)

	// EvaluateContent evaluates a single content type by key.
	EvaluateContent(ctx context.Context, userID uuid.UUID, contentKey string, snapshot domain.CognitiveSnapshot) (engine.GatingResult, error)
}

// ErrUnknownContent indicates the requested content key is not configured.
var ErrUnknownContent = fmt.Errorf("unknown content type")

// ServiceError wraps errors from the gating service with additional context.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

func newServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// service is the store-backed implementation of Service.
type service struct {
	xp     store.XPStore
	params *engine.Params
	logger *slog.Logger
	now    func() time.Time
}

// Config holds the dependencies for NewService.
type Config struct {
	XPStore store.XPStore
	Params  *engine.Params
	Logger  *slog.Logger
	// Now overrides the time source, primarily for tests.
	Now func() time.Time
}

// NewService creates a store-backed gating Service.
func NewService(cfg Config) Service {
	if cfg.XPStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("XP store cannot be nil")
	}

	params := cfg.Params
	if params == nil {
		params = engine.NewDefaultParams()
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &service{
		xp:     cfg.XPStore,
		params: params,
		logger: log.With(slog.String("component", "gating_service")),
		now:    now,
	}
}

// usage fetches the daily and weekly consumption counts for one content type.
func (s *service) usage(ctx context.Context, userID uuid.UUID, contentKey string, now time.Time) (domain.ContentUsage, error) {
	todayCount, err := s.xp.CountContentUsage(ctx, userID, contentKey, domain.DayStart(now))
	if err != nil {
		return domain.ContentUsage{}, err
	}

	weekCount, err := s.xp.CountContentUsage(ctx, userID, contentKey, domain.ISOWeekStart(now))
	if err != nil {
		return domain.ContentUsage{}, err
	}

	return domain.ContentUsage{TodayCount: todayCount, WeekCount: weekCount}, nil
}

// EvaluateAll implements Service.EvaluateAll
func (s *service) EvaluateAll(ctx context.Context, userID uuid.UUID, snapshot domain.CognitiveSnapshot) ([]engine.GatingResult, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	results := make([]engine.GatingResult, 0, len(s.params.ContentTypes))
	for _, ct := range s.params.ContentTypes {
		usage, err := s.usage(ctx, userID, ct.Key, now)
		if err != nil {
			return nil, newServiceError("evaluate_all", "failed to count content usage", err)
		}

		result, err := engine.Evaluate(ct, snapshot, usage)
		if err != nil {
			return nil, newServiceError("evaluate_all", "failed to evaluate content", err)
		}
		results = append(results, result)
	}
	return results, nil
}

// EvaluateContent implements Service.EvaluateContent
func (s *service) EvaluateContent(ctx context.Context, userID uuid.UUID, contentKey string, snapshot domain.CognitiveSnapshot) (engine.GatingResult, error) {
	if err := snapshot.Validate(); err != nil {
		return engine.GatingResult{}, err
	}

	ct, ok := s.params.ContentType(contentKey)
	if !ok {
		return engine.GatingResult{}, newServiceError("evaluate_content", contentKey, ErrUnknownContent)
	}

	now := s.now().UTC()
	usage, err := s.usage(ctx, userID, ct.Key, now)
	if err != nil {
		return engine.GatingResult{}, newServiceError("evaluate_content", "failed to count content usage", err)
	}

	result, err := engine.Evaluate(ct, snapshot, usage)
	if err != nil {
		return engine.GatingResult{}, newServiceError("evaluate_content", "failed to evaluate content", err)
	}
	return result, nil
}
