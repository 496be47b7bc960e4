// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

// Package ratelimit implements fixed-window per-key rate limiting.
//
// Each key (normally a client IP) gets a counter that resets when its
// window elapses. Fixed windows accept the classic boundary-burst
// weakness (up to 2x the limit across a window boundary) as a
// simplicity trade-off. Two independent limiter instances are used in
// practice: a strict one for login attempts and a looser one for
// general API traffic.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/mfallows/folio/internal/logging"
)

// entry tracks request counts for one key within the current window.
type entry struct {
	count   int
	resetAt time.Time
}

// Result is the outcome of a rate limit check.
type Result struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// Remaining is the number of requests left in the current window.
	// Zero when Allowed is false.
	Remaining int

	// RetryAt is when the window resets. Only meaningful when Allowed
	// is false.
	RetryAt time.Time
}

// Limiter is a fixed-window rate limiter keyed by string (client IP).
// Safe for concurrent use.
type Limiter struct {
	max    int
	window time.Duration

	mu      sync.Mutex
	entries map[string]*entry

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a Limiter allowing max requests per window per key.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:     max,
		window:  window,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Check records a request for key and reports whether it is allowed.
// The first request in a window creates the counter; entries whose
// window has elapsed reset to count 1.
func (l *Limiter) Check(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	e, ok := l.entries[key]
	if !ok || !e.resetAt.After(now) {
		l.entries[key] = &entry{count: 1, resetAt: now.Add(l.window)}
		return Result{Allowed: true, Remaining: l.max - 1}
	}

	if e.count < l.max {
		e.count++
		return Result{Allowed: true, Remaining: l.max - e.count}
	}

	return Result{Allowed: false, RetryAt: e.resetAt}
}

// Reset removes the counter for key, if any. Used when a successful
// login should clear the caller's failed-attempt budget.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// CleanupExpired removes entries whose window has elapsed and returns
// the number removed. Without this, keys that never return would leak
// until process restart.
func (l *Limiter) CleanupExpired() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	count := 0
	for key, e := range l.entries {
		if !e.resetAt.After(now) {
			delete(l.entries, key)
			count++
		}
	}
	return count
}

// StartCleanupRoutine starts a background routine that periodically
// removes expired entries until the context is canceled.
func (l *Limiter) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if count := l.CleanupExpired(); count > 0 {
					logging.Debug().Int("count", count).Msg("Cleaned up expired rate limit entries")
				}
			}
		}
	}()
}
