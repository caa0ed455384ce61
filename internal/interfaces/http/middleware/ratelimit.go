package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// RateLimitMiddleware applies a per-client token bucket. Clients are keyed
// by forwarded IP when present, otherwise the connection address.
type RateLimitMiddleware struct {
	rate  float64
	burst int

	mu      sync.Mutex
	buckets map[string]*tokenBucket

	stop chan struct{}
	once sync.Once
}

// NewRateLimitMiddleware builds the limiter. A rate of 0 disables limiting.
func NewRateLimitMiddleware(rps float64, burst int) *RateLimitMiddleware {
	if burst < 1 {
		burst = 1
	}
	m := &RateLimitMiddleware{
		rate:    rps,
		burst:   burst,
		buckets: make(map[string]*tokenBucket),
		stop:    make(chan struct{}),
	}
	if rps > 0 {
		go m.cleanupLoop(5 * time.Minute)
	}
	return m
}

// Stop terminates the background cleanup goroutine.
func (m *RateLimitMiddleware) Stop() {
	m.once.Do(func() { close(m.stop) })
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.rate <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		allowed, remaining := m.allow(clientKey(r))
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(m.burst))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"code":"COMMON_007","message":"rate limit exceeded"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) allow(key string) (bool, int) {
	now := time.Now()

	m.mu.Lock()
	bucket, ok := m.buckets[key]
	if !ok {
		bucket = &tokenBucket{tokens: float64(m.burst), lastRefill: now}
		m.buckets[key] = bucket
	}
	m.mu.Unlock()

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	bucket.tokens += now.Sub(bucket.lastRefill).Seconds() * m.rate
	if bucket.tokens > float64(m.burst) {
		bucket.tokens = float64(m.burst)
	}
	bucket.lastRefill = now

	if bucket.tokens < 1 {
		return false, 0
	}
	bucket.tokens--
	return true, int(bucket.tokens)
}

// cleanupLoop drops buckets idle long enough to have refilled completely.
func (m *RateLimitMiddleware) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-interval)
			m.mu.Lock()
			for key, bucket := range m.buckets {
				bucket.mu.Lock()
				idle := bucket.lastRefill.Before(cutoff)
				bucket.mu.Unlock()
				if idle {
					delete(m.buckets, key)
				}
			}
			m.mu.Unlock()
		}
	}
}

func clientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

//Personal.AI order the ending
