package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow_FixedWindow(t *testing.T) {
	rl := NewMemoryRateLimiter(&Config{WindowSize: time.Minute, MaxRequests: 2})
	defer rl.Close()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	first := rl.Allow("1.2.3.4")
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)
	assert.True(t, rl.Allow("1.2.3.4").Allowed)

	blocked := rl.Allow("1.2.3.4")
	assert.False(t, blocked.Allowed)
	assert.Equal(t, time.Minute, blocked.RetryAfter)

	// other clients are counted separately
	assert.True(t, rl.Allow("5.6.7.8").Allowed)

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("1.2.3.4").Allowed)
}

func TestCleanup_DropsExpiredWindows(t *testing.T) {
	rl := NewMemoryRateLimiter(&Config{WindowSize: time.Minute, MaxRequests: 1})
	defer rl.Close()
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(2 * time.Minute)
	rl.cleanup()
	assert.Empty(t, rl.windows)
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/feedback", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", GetClientIP(r))

	r.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "10.0.0.2", GetClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.3")
	assert.Equal(t, "203.0.113.9", GetClientIP(r))
}
