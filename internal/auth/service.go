// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/mfallows/folio/internal/audit"
	"github.com/mfallows/folio/internal/logging"
	"github.com/mfallows/folio/internal/ratelimit"
)

// Cookie names set by the authentication layer.
const (
	// SessionCookieName carries the signed session token.
	SessionCookieName = "admin_session"

	// CSRFCookieName mirrors the one-time CSRF token.
	CSRFCookieName = "csrf_token"
)

// Config holds authentication service settings.
type Config struct {
	// SessionSecret is the HMAC key for session tokens. Empty means an
	// ephemeral random secret is generated (development only; sessions
	// do not survive restarts).
	SessionSecret string

	// SessionMaxAge is the session token lifetime.
	SessionMaxAge time.Duration

	// CSRFTokenTTL is the one-time CSRF token lifetime.
	CSRFTokenTTL time.Duration

	// Login rate limiting per client IP.
	LoginRateLimit  int
	LoginRateWindow time.Duration

	// CookieSecure sets the Secure attribute on issued cookies.
	CookieSecure bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		SessionMaxAge:   12 * time.Hour,
		CSRFTokenTTL:    30 * time.Minute,
		LoginRateLimit:  5,
		LoginRateWindow: 10 * time.Minute,
		CookieSecure:    true,
	}
}

// Service bundles the session codec, CSRF store, password verifier, and
// login rate limiter behind the login/logout/session handlers and the
// RequireAuth middleware. All state is injected; nothing here is a
// package-level singleton.
type Service struct {
	codec        *TokenCodec
	csrf         *CSRFStore
	password     *PasswordVerifier
	loginLimiter *ratelimit.Limiter
	auditLog     *audit.Log

	sessionMaxAge time.Duration
	csrfTTL       time.Duration
	cookieSecure  bool
}

// NewService creates an authentication service. When cfg.SessionSecret
// is empty an ephemeral secret is generated and a warning logged; every
// outstanding session is invalidated by a restart in that mode.
func NewService(cfg Config, password *PasswordVerifier, auditLog *audit.Log) *Service {
	secret := cfg.SessionSecret
	if secret == "" {
		secret = generateEphemeralSecret()
		logging.Warn().Msg("ADMIN_SESSION_SECRET not set, using ephemeral secret; sessions will not survive restarts")
	}

	return &Service{
		codec:         NewTokenCodec(secret, cfg.SessionMaxAge),
		csrf:          NewCSRFStore(cfg.CSRFTokenTTL),
		password:      password,
		loginLimiter:  ratelimit.New(cfg.LoginRateLimit, cfg.LoginRateWindow),
		auditLog:      auditLog,
		sessionMaxAge: cfg.SessionMaxAge,
		csrfTTL:       cfg.CSRFTokenTTL,
		cookieSecure:  cfg.CookieSecure,
	}
}

// Codec exposes the session token codec (for tests and the session
// status endpoint).
func (s *Service) Codec() *TokenCodec {
	return s.codec
}

// CSRF exposes the CSRF token store.
func (s *Service) CSRF() *CSRFStore {
	return s.csrf
}

// Sweep removes expired CSRF tokens and rate limit entries, returning
// the total number of entries removed. Called periodically by the
// supervision tree to bound memory.
func (s *Service) Sweep() int {
	return s.csrf.CleanupExpired() + s.loginLimiter.CleanupExpired()
}

// StartSweepRoutine launches a background sweep until ctx is canceled.
// Prefer the supervised sweeper service in production; this suits tests
// and embedded use.
func (s *Service) StartSweepRoutine(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if count := s.Sweep(); count > 0 {
					logging.Debug().Int("count", count).Msg("Swept expired auth entries")
				}
			}
		}
	}()
}

// generateEphemeralSecret creates a random development-mode HMAC key.
func generateEphemeralSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		// rand.Read failing means the platform entropy source is broken;
		// there is no safe fallback for a signing key.
		panic("auth: cannot generate session secret: " + err.Error())
	}
	return hex.EncodeToString(bytes)
}
