// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package auth

import (
	"testing"
	"time"
)

func TestCSRFGenerateVerify(t *testing.T) {
	store := NewCSRFStore(30 * time.Minute)

	token, expiresAt := store.Generate()
	if token == "" {
		t.Fatal("Generate returned empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Error("Expected future expiry")
	}

	if !store.Verify(token) {
		t.Error("Fresh token failed verification")
	}
}

func TestCSRFOneTimeUse(t *testing.T) {
	store := NewCSRFStore(30 * time.Minute)

	token, _ := store.Generate()
	if !store.Verify(token) {
		t.Fatal("First verification failed")
	}
	if store.Verify(token) {
		t.Error("Second verification should fail, tokens are single-use")
	}
}

func TestCSRFExpiredToken(t *testing.T) {
	store := NewCSRFStore(30 * time.Minute)

	issued := time.Now()
	store.now = func() time.Time { return issued }
	token, _ := store.Generate()

	store.now = func() time.Time { return issued.Add(31 * time.Minute) }
	if store.Verify(token) {
		t.Error("Expired token should not verify")
	}
	if store.Len() != 0 {
		t.Error("Expired token should be consumed by the failed verification")
	}
}

func TestCSRFUnknownToken(t *testing.T) {
	store := NewCSRFStore(30 * time.Minute)

	if store.Verify("never-issued") {
		t.Error("Unknown token should not verify")
	}
	if store.Verify("") {
		t.Error("Empty token should not verify")
	}
}

func TestCSRFCleanupExpired(t *testing.T) {
	store := NewCSRFStore(30 * time.Minute)

	issued := time.Now()
	store.now = func() time.Time { return issued }
	store.Generate()
	store.Generate()

	store.now = func() time.Time { return issued.Add(20 * time.Minute) }
	live, _ := store.Generate()

	store.now = func() time.Time { return issued.Add(35 * time.Minute) }
	if removed := store.CleanupExpired(); removed != 2 {
		t.Errorf("Expected 2 expired tokens removed, got %d", removed)
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 live token after cleanup, got %d", store.Len())
	}
	if !store.Verify(live) {
		t.Error("Live token should survive cleanup")
	}
}

func TestCSRFConcurrentVerify(t *testing.T) {
	store := NewCSRFStore(30 * time.Minute)
	token, _ := store.Generate()

	const workers = 10
	results := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		go func() {
			results <- store.Verify(token)
		}()
	}

	successes := 0
	for i := 0; i < workers; i++ {
		if <-results {
			successes++
		}
	}
	if successes != 1 {
		t.Errorf("Expected exactly 1 successful verification, got %d", successes)
	}
}
