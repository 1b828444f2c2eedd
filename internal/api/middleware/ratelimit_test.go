package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowExhaustsBurst(t *testing.T) {
	rl := NewRateLimiter(0, 3) // no refill

	for i := 0; i < 3; i++ {
		assert.True(t, rl.allow("10.0.0.1:1234"), "request %d", i)
	}
	assert.False(t, rl.allow("10.0.0.1:1234"))

	// Buckets are per IP.
	assert.True(t, rl.allow("10.0.0.2:1234"))
}

func TestLimitReturns429(t *testing.T) {
	rl := NewRateLimiter(0, 1)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ships", nil)
	req.RemoteAddr = "10.0.0.3:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}
