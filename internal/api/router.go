// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mfallows/folio/internal/audit"
	"github.com/mfallows/folio/internal/auth"
	"github.com/mfallows/folio/internal/config"
	"github.com/mfallows/folio/internal/content"
	"github.com/mfallows/folio/internal/metrics"
	"github.com/mfallows/folio/internal/middleware"
	"github.com/mfallows/folio/internal/models"
	"github.com/mfallows/folio/internal/ratelimit"
)

// Router wires the HTTP surface: public content reads, the auth
// endpoints, and the session-gated admin API.
type Router struct {
	auth       *auth.Service
	content    *content.Service
	auditLog   *audit.Log
	apiLimiter *ratelimit.Limiter
	chimw      *ChiMiddleware
	startTime  time.Time
}

// NewRouter creates a router over the injected services.
func NewRouter(cfg *config.Config, authSvc *auth.Service, contentSvc *content.Service, auditLog *audit.Log) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins

	return &Router{
		auth:       authSvc,
		content:    contentSvc,
		auditLog:   auditLog,
		apiLimiter: ratelimit.New(cfg.Security.APIRateLimit, cfg.Security.APIRateWindow),
		chimw:      NewChiMiddleware(mwConfig),
		startTime:  time.Now(),
	}
}

// APILimiter exposes the admin API limiter for the sweeper service.
func (rt *Router) APILimiter() *ratelimit.Limiter {
	return rt.apiLimiter
}

// Setup builds the chi handler tree.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.chimw.CORS())

	// Health endpoints: permissive limiting for monitoring probes.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(rt.chimw.RateLimitHealth())
		r.Use(SecurityHeaders())
		r.Get("/", rt.Health)
		r.Get("/live", rt.HealthLive)
		r.Get("/ready", rt.HealthReady)
	})

	// Public content reads: edge limiting plus gzip, no auth.
	r.Route("/api/v1/content", func(r chi.Router) {
		r.Use(rt.chimw.RateLimitPublic())
		r.Use(SecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)

		r.Get("/", rt.GetAllContent)
		r.Get("/{section}", rt.GetContentSection)
	})

	// Auth endpoints. The edge limiter here is a coarse outer guard;
	// login enforces its own audited per-IP window inside the handler.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(rt.chimw.RateLimitAuth())
		r.Use(SecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/csrf", rt.auth.HandleCSRF)
		r.Post("/login", rt.auth.HandleLogin)
		r.Post("/logout", rt.auth.HandleLogout)
		r.Get("/session", rt.auth.HandleSession)
	})

	// Admin endpoints: session gate first, then the per-IP API window.
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(SecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(rt.auth.RequireAuth)
		r.Use(rt.apiRateLimit)

		r.Put("/content/{section}", rt.UpdateContentSection)
		r.Delete("/content/{section}", rt.DeleteContentSection)
		r.Get("/audit", rt.QueryAudit)
	})

	// Observability.
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// apiRateLimit enforces the per-IP admin API window. Unlike the edge
// httprate guards this one responds with the standard envelope, sets
// Retry-After, and counts hits in the api_rate_limit metrics.
func (rt *Router) apiRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := auth.ClientIP(r)

		result := rt.apiLimiter.Check(ip)
		if !result.Allowed {
			metrics.APIRateLimitHits.WithLabelValues("api").Inc()
			retryAfter := int(time.Until(result.RetryAt).Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			respondError(w, http.StatusTooManyRequests, models.ErrCodeRateLimit,
				"Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}
