package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rateLimitedHandler(rps float64, burst int) (http.Handler, *RateLimitMiddleware) {
	m := NewRateLimitMiddleware(rps, burst)
	return m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})), m
}

func TestRateLimit_AllowsWithinBurst(t *testing.T) {
	h, m := rateLimitedHandler(1, 3)
	defer m.Stop()

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/equipment", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimit_BlocksBeyondBurst(t *testing.T) {
	h, m := rateLimitedHandler(0.001, 2)
	defer m.Stop()

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/equipment", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/equipment", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimit_SeparateClients(t *testing.T) {
	h, m := rateLimitedHandler(0.001, 1)
	defer m.Stop()

	first := httptest.NewRequest(http.MethodGet, "/api/v1/equipment", nil)
	first.Header.Set("X-Forwarded-For", "10.0.0.1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, first)
	assert.Equal(t, http.StatusOK, w.Code)

	second := httptest.NewRequest(http.MethodGet, "/api/v1/equipment", nil)
	second.Header.Set("X-Forwarded-For", "10.0.0.2")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, second)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_DisabledWhenZero(t *testing.T) {
	h, m := rateLimitedHandler(0, 1)
	defer m.Stop()

	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/equipment", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

//Personal.AI order the ending
