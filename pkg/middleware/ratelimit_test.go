package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRateLimiterPerIP(t *testing.T) {
	rl := NewRateLimiter(2, zap.NewNop())
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(addr string) int {
		r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5002"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:5000"))
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(5, zap.NewNop())
	now := time.Now()

	rl.getLimiter("10.0.0.1", now.Add(-time.Hour))
	rl.getLimiter("10.0.0.2", now)

	rl.Cleanup(now)

	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.2")
}
