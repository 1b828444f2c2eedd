package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func validClaims(userID uuid.UUID) Claims {
	return Claims{
		Sub:   userID.String(),
		Email: "ops@example.com",
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func runAuthenticated(token string) (*httptest.ResponseRecorder, *Actor) {
	var actor *Actor
	handler := NewJWTMiddleware(testSecret).Authenticate(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor = ActorFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ships", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, actor
}

func TestAuthenticateValidToken(t *testing.T) {
	userID := uuid.New()
	rec, actor := runAuthenticated(signToken(t, testSecret, validClaims(userID)))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, actor)
	assert.Equal(t, userID, actor.UserID)
	assert.Equal(t, "ops@example.com", actor.Email)
	assert.Equal(t, "admin", actor.Role)
}

func TestAuthenticateMissingToken(t *testing.T) {
	rec, _ := runAuthenticated("")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	rec, _ := runAuthenticated(signToken(t, "other-secret", validClaims(uuid.New())))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	claims := validClaims(uuid.New())
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	rec, _ := runAuthenticated(signToken(t, testSecret, claims))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateBadSubject(t *testing.T) {
	claims := validClaims(uuid.New())
	claims.Sub = "not-a-uuid"

	rec, _ := runAuthenticated(signToken(t, testSecret, claims))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserIDFromContextUnauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	assert.Nil(t, UserIDFromContext(req.Context()))
}
