// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package ratelimit

import (
	"testing"
	"time"
)

func TestCheckAllowsUpToMax(t *testing.T) {
	t.Parallel()

	l := New(5, 10*time.Minute)

	for i := 0; i < 5; i++ {
		result := l.Check("192.168.1.1")
		if !result.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if result.Remaining != 5-i-1 {
			t.Errorf("request %d: expected remaining %d, got %d", i+1, 5-i-1, result.Remaining)
		}
	}

	result := l.Check("192.168.1.1")
	if result.Allowed {
		t.Fatal("6th request should be denied")
	}
	if result.RetryAt.IsZero() {
		t.Error("denied result should carry RetryAt")
	}
}

func TestCheckKeysAreIndependent(t *testing.T) {
	t.Parallel()

	l := New(1, time.Minute)

	if !l.Check("10.0.0.1").Allowed {
		t.Fatal("first key should be allowed")
	}
	if l.Check("10.0.0.1").Allowed {
		t.Fatal("first key should now be limited")
	}
	if !l.Check("10.0.0.2").Allowed {
		t.Error("second key should be unaffected")
	}
}

func TestCheckWindowReset(t *testing.T) {
	t.Parallel()

	l := New(2, time.Minute)

	current := time.Now()
	l.now = func() time.Time { return current }

	l.Check("ip")
	l.Check("ip")
	if l.Check("ip").Allowed {
		t.Fatal("expected denial at limit")
	}

	// Advance past the window boundary: counter resets to 1.
	current = current.Add(time.Minute + time.Second)
	result := l.Check("ip")
	if !result.Allowed {
		t.Fatal("expected allowance after window reset")
	}
	if result.Remaining != 1 {
		t.Errorf("expected remaining 1 after reset, got %d", result.Remaining)
	}
}

func TestRetryAtMatchesWindowEnd(t *testing.T) {
	t.Parallel()

	l := New(1, 10*time.Minute)

	current := time.Now()
	l.now = func() time.Time { return current }

	l.Check("ip")
	result := l.Check("ip")
	if result.Allowed {
		t.Fatal("expected denial")
	}
	if !result.RetryAt.Equal(current.Add(10 * time.Minute)) {
		t.Errorf("expected RetryAt %v, got %v", current.Add(10*time.Minute), result.RetryAt)
	}
}

func TestReset(t *testing.T) {
	t.Parallel()

	l := New(1, time.Minute)

	l.Check("ip")
	if l.Check("ip").Allowed {
		t.Fatal("expected denial at limit")
	}

	l.Reset("ip")
	if !l.Check("ip").Allowed {
		t.Error("expected allowance after reset")
	}
}

func TestCleanupExpired(t *testing.T) {
	t.Parallel()

	l := New(5, time.Minute)

	current := time.Now()
	l.now = func() time.Time { return current }

	l.Check("a")
	l.Check("b")
	if l.Len() != 2 {
		t.Fatalf("expected 2 tracked keys, got %d", l.Len())
	}

	// Nothing has expired yet.
	if count := l.CleanupExpired(); count != 0 {
		t.Errorf("expected 0 removals, got %d", count)
	}

	current = current.Add(2 * time.Minute)
	l.Check("c")

	if count := l.CleanupExpired(); count != 2 {
		t.Errorf("expected 2 removals, got %d", count)
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 remaining key, got %d", l.Len())
	}
}

func TestConcurrentChecks(t *testing.T) {
	t.Parallel()

	l := New(100, time.Minute)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 20; j++ {
				l.Check("shared")
			}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	// 200 checks against a limit of 100: the next must be denied.
	if l.Check("shared").Allowed {
		t.Error("expected denial after concurrent checks exceeded the limit")
	}
}
