package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/api/shared"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/domain"
	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/session"
)

// mockSessionManager returns canned results per call.
type mockSessionManager struct {
	session *domain.RecoverySession
	err     error
}

var _ session.Manager = (*mockSessionManager)(nil)

func (m *mockSessionManager) Start(ctx context.Context, userID uuid.UUID, mode domain.SessionMode) (*domain.RecoverySession, error) {
	return m.session, m.err
}

func (m *mockSessionManager) Active(ctx context.Context, userID uuid.UUID) (*domain.RecoverySession, error) {
	return m.session, m.err
}

func (m *mockSessionManager) ReportViolation(ctx context.Context, userID uuid.UUID) (*domain.RecoverySession, error) {
	return m.session, m.err
}

func (m *mockSessionManager) Complete(ctx context.Context, userID uuid.UUID) (*domain.RecoverySession, error) {
	return m.session, m.err
}

func (m *mockSessionManager) Cancel(ctx context.Context, userID uuid.UUID) error {
	return m.err
}

// authedRequest builds a request whose context carries an authenticated user.
func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, uuid.New())
	return r.WithContext(ctx)
}

func testSession(t *testing.T) *domain.RecoverySession {
	t.Helper()
	s, err := domain.NewRecoverySession(uuid.New(), domain.SessionModeDetox,
		time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return s
}

func TestStartSession(t *testing.T) {
	t.Parallel()

	handler := NewSessionHandler(&mockSessionManager{session: testSession(t)}, slog.Default())

	w := httptest.NewRecorder()
	handler.StartSession(w, authedRequest("POST", "/sessions", `{"mode":"DETOX"}`))

	require.Equal(t, http.StatusCreated, w.Code)

	var response SessionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "DETOX", response.Mode)
	assert.Equal(t, "ACTIVE", response.Status)
	assert.Zero(t, response.ViolationCount)
}

func TestStartSessionInvalidMode(t *testing.T) {
	t.Parallel()

	handler := NewSessionHandler(&mockSessionManager{session: testSession(t)}, slog.Default())

	w := httptest.NewRecorder()
	handler.StartSession(w, authedRequest("POST", "/sessions", `{"mode":"NAP"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartSessionConflict(t *testing.T) {
	t.Parallel()

	handler := NewSessionHandler(&mockSessionManager{err: session.ErrAlreadyActive}, slog.Default())

	w := httptest.NewRecorder()
	handler.StartSession(w, authedRequest("POST", "/sessions", `{"mode":"WALK"}`))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCompleteSessionTooShort(t *testing.T) {
	t.Parallel()

	handler := NewSessionHandler(&mockSessionManager{err: session.ErrSessionTooShort}, slog.Default())

	w := httptest.NewRecorder()
	handler.CompleteSession(w, authedRequest("POST", "/sessions/current/complete", ""))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response shared.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "Session has not reached the minimum duration", response.Error)
}

func TestCancelSessionWithoutActive(t *testing.T) {
	t.Parallel()

	handler := NewSessionHandler(&mockSessionManager{err: session.ErrNoActiveSession}, slog.Default())

	w := httptest.NewRecorder()
	handler.CancelSession(w, authedRequest("POST", "/sessions/current/cancel", ""))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionEndpointsRequireUser(t *testing.T) {
	t.Parallel()

	handler := NewSessionHandler(&mockSessionManager{session: testSession(t)}, slog.Default())

	// No user ID in context.
	w := httptest.NewRecorder()
	handler.GetActiveSession(w, httptest.NewRequest("GET", "/sessions/current", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
