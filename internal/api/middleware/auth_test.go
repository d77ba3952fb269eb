package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/service/auth"
)

// mockJWTService validates exactly one known token.
type mockJWTService struct {
	validToken string
	userID     uuid.UUID
	err        error
}

var _ auth.JWTService = (*mockJWTService)(nil)

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.validToken, nil
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.err != nil {
		return nil, m.err
	}
	if tokenString != m.validToken {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: m.userID}, nil
}

func newAuthTestServer(jwtService auth.JWTService) (http.Handler, *uuid.UUID) {
	var seenUserID uuid.UUID
	middleware := NewAuthMiddleware(jwtService)
	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := GetUserID(r); ok {
			seenUserID = userID
		}
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &seenUserID
}

func TestAuthenticateValidToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	handler, seenUserID := newAuthTestServer(&mockJWTService{validToken: "good-token", userID: userID})

	r := httptest.NewRequest("GET", "/progress", nil)
	r.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, *seenUserID)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	t.Parallel()

	handler, _ := newAuthTestServer(&mockJWTService{validToken: "good-token"})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/progress", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	t.Parallel()

	handler, _ := newAuthTestServer(&mockJWTService{validToken: "good-token"})

	r := httptest.NewRequest("GET", "/progress", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	t.Parallel()

	handler, _ := newAuthTestServer(&mockJWTService{validToken: "good-token"})

	r := httptest.NewRequest("GET", "/progress", nil)
	r.Header.Set("Authorization", "Bearer forged-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	t.Parallel()

	handler, _ := newAuthTestServer(&mockJWTService{err: auth.ErrExpiredToken})

	r := httptest.NewRequest("GET", "/progress", nil)
	r.Header.Set("Authorization", "Bearer stale-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
