package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move the limiter's notion of time.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *fakeClock) {
	t.Helper()
	rl := NewRateLimiter(limit, window)
	t.Cleanup(rl.Stop)
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl.now = clock.now
	return rl, clock
}

func TestRateLimiterAllow(t *testing.T) {
	rl, _ := newLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, _ := rl.allow("test-ip")
		require.True(t, ok, "request %d should be allowed", i+1)
	}

	ok, retry := rl.allow("test-ip")
	assert.False(t, ok, "4th request should be rate-limited")
	assert.Equal(t, time.Minute, retry)

	ok, _ = rl.allow("other-ip")
	assert.True(t, ok, "different IP should be allowed")
}

func TestRateLimiterFixedWindow(t *testing.T) {
	rl, clock := newLimiter(t, 2, time.Minute)

	rl.allow("test-ip")
	clock.advance(40 * time.Second)
	rl.allow("test-ip")

	ok, retry := rl.allow("test-ip")
	assert.False(t, ok)
	assert.Equal(t, 20*time.Second, retry)

	// The window is anchored at the first request, not the latest one.
	clock.advance(20 * time.Second)
	ok, _ = rl.allow("test-ip")
	assert.True(t, ok, "should be allowed once the window resets")
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl, _ := newLimiter(t, 2, time.Minute)

	calls := 0
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusCreated, send().Code, "request %d", i+1)
	}

	rr := send()
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))
	assert.Equal(t, "Too many requests, please try again later.", errorBody(t, rr))
	assert.Equal(t, 2, calls, "rejected request must not reach the handler")
}

func TestRateLimiterIgnoresSpoofedForwarding(t *testing.T) {
	rl, _ := newLimiter(t, 2, time.Minute)
	handler := RealIP(nil)(rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})))

	accepted := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.1.0.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.2.0.%d", i))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code == http.StatusCreated {
			accepted++
		}
	}
	assert.Equal(t, 2, accepted, "one socket peer shares one window")
}

func TestRateLimiterCleanup(t *testing.T) {
	rl, clock := newLimiter(t, 5, time.Minute)

	rl.allow("ip-old")
	clock.advance(45 * time.Second)
	rl.allow("ip-fresh")
	clock.advance(30 * time.Second)

	rl.cleanup()

	rl.mu.Lock()
	_, oldExists := rl.clients["ip-old"]
	_, freshExists := rl.clients["ip-fresh"]
	rl.mu.Unlock()

	assert.False(t, oldExists, "expired window should be removed")
	assert.True(t, freshExists, "active window should be kept")
}
