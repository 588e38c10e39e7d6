// File: internal/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config holds rate limiting configuration
type Config struct {
	WindowSize    time.Duration // fixed window per client
	MaxRequests   int           // accepted requests per window
	CleanupPeriod time.Duration // how often expired windows are dropped
}

// DefaultSubmitConfig limits feedback and booking submissions.
func DefaultSubmitConfig() *Config {
	return &Config{
		WindowSize:    time.Minute,
		MaxRequests:   5,
		CleanupPeriod: 10 * time.Minute,
	}
}

// window tracks requests of one client in the current window
type window struct {
	Count   int
	Started time.Time
}

// Info describes the limiter's decision for one request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// MemoryRateLimiter is a fixed-window limiter keyed by client identifier.
type MemoryRateLimiter struct {
	config  *Config
	now     func() time.Time
	mu      sync.Mutex
	windows map[string]*window
	stopCh  chan struct{}
	once    sync.Once
}

func NewMemoryRateLimiter(config *Config) *MemoryRateLimiter {
	if config == nil {
		config = DefaultSubmitConfig()
	}
	limiter := &MemoryRateLimiter{
		config:  config,
		now:     time.Now,
		windows: make(map[string]*window),
		stopCh:  make(chan struct{}),
	}
	if config.CleanupPeriod > 0 {
		go limiter.cleanupLoop()
	}
	return limiter
}

// Allow counts one request for identifier.
func (rl *MemoryRateLimiter) Allow(identifier string) Info {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[identifier]
	if !ok || now.Sub(w.Started) >= rl.config.WindowSize {
		w = &window{Started: now}
		rl.windows[identifier] = w
	}

	reset := w.Started.Add(rl.config.WindowSize)
	if w.Count >= rl.config.MaxRequests {
		return Info{
			Allowed:    false,
			Limit:      rl.config.MaxRequests,
			ResetTime:  reset,
			RetryAfter: reset.Sub(now),
		}
	}
	w.Count++
	return Info{
		Allowed:   true,
		Limit:     rl.config.MaxRequests,
		Remaining: rl.config.MaxRequests - w.Count,
		ResetTime: reset,
	}
}

func (rl *MemoryRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *MemoryRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for identifier, w := range rl.windows {
		if now.Sub(w.Started) >= rl.config.WindowSize {
			delete(rl.windows, identifier)
		}
	}
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (rl *MemoryRateLimiter) Close() {
	rl.once.Do(func() { close(rl.stopCh) })
}

// GetClientIP extracts the real client IP from request
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := strings.TrimSpace(strings.Split(forwarded, ",")[0]); ip != "" {
			return ip
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
