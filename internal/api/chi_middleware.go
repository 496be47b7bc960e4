// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

// Package api provides HTTP routing using the Chi router, with
// middleware factories from the Chi ecosystem.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// ChiMiddlewareConfig holds configuration for the Chi middleware
// factories.
type ChiMiddlewareConfig struct {
	// CORS configuration.
	CORSAllowedOrigins   []string
	CORSAllowedMethods   []string
	CORSAllowedHeaders   []string
	CORSAllowCredentials bool
	CORSMaxAge           int // seconds

	// Edge rate limiting (httprate, per IP).
	RateLimitDisabled bool
}

// DefaultChiMiddlewareConfig returns a secure default configuration.
// CORS origins default to empty so cross-origin access requires
// explicit configuration.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins:   []string{},
		CORSAllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CORSAllowedHeaders:   []string{"Content-Type", "X-CSRF-Token", "X-Request-ID"},
		CORSAllowCredentials: true, // Session and CSRF cookies
		CORSMaxAge:           86400,
	}
}

// Edge rate limit tiers. These are a coarse outer guard using httprate;
// the login endpoint additionally enforces its own per-IP window with
// audit trail behind them.
var (
	// RateLimitPublic covers the public content endpoints.
	RateLimitPublic = RateLimitConfig{Requests: 300, Window: time.Minute}

	// RateLimitAuthEdge covers the auth endpoint group.
	RateLimitAuthEdge = RateLimitConfig{Requests: 30, Window: time.Minute}

	// RateLimitHealth allows frequent monitoring probes.
	RateLimitHealth = RateLimitConfig{Requests: 1000, Window: time.Minute}
)

// RateLimitConfig defines parameters for one httprate limiter.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// ChiMiddleware provides Chi-compatible middleware factories.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates the middleware factory.
func NewChiMiddleware(config *ChiMiddlewareConfig) *ChiMiddleware {
	if config == nil {
		config = DefaultChiMiddlewareConfig()
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   config.CORSAllowedOrigins,
		AllowedMethods:   config.CORSAllowedMethods,
		AllowedHeaders:   config.CORSAllowedHeaders,
		AllowCredentials: config.CORSAllowCredentials,
		MaxAge:           config.CORSMaxAge,
	})

	return &ChiMiddleware{
		config: config,
		cors:   corsHandler,
	}
}

// CORS returns the go-chi/cors middleware built from the config.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimitCustom returns an httprate per-IP limiter for one tier.
func (m *ChiMiddleware) RateLimitCustom(config RateLimitConfig) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return httprate.LimitByIP(config.Requests, config.Window)
}

// RateLimitPublic returns the limiter for public content endpoints.
func (m *ChiMiddleware) RateLimitPublic() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitPublic)
}

// RateLimitAuth returns the limiter for the auth endpoint group.
func (m *ChiMiddleware) RateLimitAuth() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitAuthEdge)
}

// RateLimitHealth returns the limiter for health endpoints.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitHealth)
}

// SecurityHeaders adds the standard API response headers: MIME
// sniffing and framing protection, no caching of API payloads, and
// HSTS when the request arrived over TLS.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
