package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter wraps rate.Limiter with a name for logging and an optional
// cooldown window that is opened when the remote API reports rate limiting.
type Limiter struct {
	limiter *rate.Limiter
	name    string
	now     func() time.Time

	mu            sync.Mutex
	cooldownUntil time.Time
}

// New creates a new rate limiter with the given requests per second.
// The burst size equals the rate, allowing short bursts up to the rate limit.
func New(name string, requestsPerSecond int) *Limiter {
	return NewWithBurst(name, requestsPerSecond, requestsPerSecond)
}

// NewWithBurst creates a new rate limiter with custom burst size.
func NewWithBurst(name string, requestsPerSecond, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		name:    name,
		now:     time.Now,
	}
}

// Wait blocks until the rate limiter allows a request to proceed.
// Returns an error if the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
	}
	return nil
}

// CoolDown closes the limiter for d. Calls made while a longer window is
// already open do not shorten it. Non-positive durations are ignored.
func (l *Limiter) CoolDown(d time.Duration) {
	if d <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	until := l.now().Add(d)
	if until.After(l.cooldownUntil) {
		l.cooldownUntil = until
		slog.Warn("Rate limit cooldown started", "limiter", l.name, "until", until.Format(time.TimeOnly))
	}
}

// CoolingDown reports whether a cooldown window is currently open.
func (l *Limiter) CoolingDown() bool {
	return l.Remaining() > 0
}

// Remaining returns how long the current cooldown window stays open.
func (l *Limiter) Remaining() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cooldownUntil.IsZero() {
		return 0
	}
	left := l.cooldownUntil.Sub(l.now())
	if left <= 0 {
		l.cooldownUntil = time.Time{}
		return 0
	}
	return left
}

// Name returns the name of this rate limiter.
func (l *Limiter) Name() string {
	return l.name
}
