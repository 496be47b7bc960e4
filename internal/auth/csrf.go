// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mfallows/folio/internal/logging"
	"github.com/mfallows/folio/internal/metrics"
)

// CSRFStore issues one-time tokens that bind a login POST to a token
// endpoint GET the server itself answered. A token is consumed on its
// first successful verification or lapses after the TTL, whichever
// comes first. Safe for concurrent use.
type CSRFStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	ttl    time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

// NewCSRFStore creates a store issuing tokens valid for ttl.
func NewCSRFStore(ttl time.Duration) *CSRFStore {
	return &CSRFStore{
		tokens: make(map[string]time.Time),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Generate creates a new one-time token and returns it with its expiry.
func (s *CSRFStore) Generate() (string, time.Time) {
	token := uuid.NewString()
	expiresAt := s.now().Add(s.ttl)

	s.mu.Lock()
	s.tokens[token] = expiresAt
	s.mu.Unlock()

	metrics.AuthCSRFTokensIssued.Inc()
	return token, expiresAt
}

// Verify consumes a token. It returns true exactly once per generated
// token, and false for unknown, already-used, or expired tokens.
// Expired entries are removed on lookup.
func (s *CSRFStore) Verify(token string) bool {
	if token == "" {
		metrics.RecordCSRFRejection("missing")
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.tokens[token]
	if !ok {
		metrics.RecordCSRFRejection("unknown")
		return false
	}

	// One-time use: the entry goes away whether it verified or expired.
	delete(s.tokens, token)

	if s.now().After(expiresAt) {
		metrics.RecordCSRFRejection("expired")
		return false
	}
	return true
}

// Len returns the number of outstanding tokens.
func (s *CSRFStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// CleanupExpired removes lapsed tokens and returns the number removed.
// Tokens for clients that never complete a login would otherwise leak
// until process restart.
func (s *CSRFStore) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	count := 0
	for token, expiresAt := range s.tokens {
		if now.After(expiresAt) {
			delete(s.tokens, token)
			count++
		}
	}
	return count
}

// StartCleanupRoutine starts a background routine that periodically
// removes expired tokens until the context is canceled.
func (s *CSRFStore) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if count := s.CleanupExpired(); count > 0 {
					logging.Debug().Int("count", count).Msg("Cleaned up expired CSRF tokens")
				}
			}
		}
	}()
}
