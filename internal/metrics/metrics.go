// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

// Package metrics provides Prometheus instrumentation for the HTTP API,
// authentication flows, rate limiting, content storage, and the audit log.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Authentication Metrics
	AuthLoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Total number of admin login attempts",
		},
		[]string{"result"}, // "success", "bad_password", "bad_csrf", "rate_limited"
	)

	AuthSessionVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_session_verifications_total",
			Help: "Total number of session token verifications",
		},
		[]string{"result"}, // "valid", "invalid", "expired", "weak_binding"
	)

	AuthCSRFTokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_csrf_tokens_issued_total",
			Help: "Total number of CSRF tokens issued",
		},
	)

	AuthCSRFRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_csrf_rejections_total",
			Help: "Total number of rejected CSRF tokens",
		},
		[]string{"reason"}, // "missing", "unknown", "expired", "reused"
	)

	// Audit Log Metrics
	AuditEventsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_events_recorded_total",
			Help: "Total number of audit events recorded",
		},
		[]string{"action"},
	)

	AuditEventsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_events_evicted_total",
			Help: "Total number of audit events evicted at capacity",
		},
	)

	// Content Store Metrics
	ContentReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_reads_total",
			Help: "Total number of content section reads",
		},
		[]string{"section", "source"}, // source: "store", "default"
	)

	ContentWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_writes_total",
			Help: "Total number of content section writes",
		},
		[]string{"section", "operation"}, // operation: "update", "reset"
	)

	ContentStoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_store_errors_total",
			Help: "Total number of content store failures",
		},
		[]string{"operation"},
	)

	// Validation Metrics
	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_failures_total",
			Help: "Total number of input validation failures",
		},
		[]string{"section"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordLoginAttempt records the outcome of an admin login attempt
func RecordLoginAttempt(result string) {
	AuthLoginAttempts.WithLabelValues(result).Inc()
}

// RecordSessionVerification records the outcome of a session token verification
func RecordSessionVerification(result string) {
	AuthSessionVerifications.WithLabelValues(result).Inc()
}

// RecordCSRFRejection records a rejected CSRF token
func RecordCSRFRejection(reason string) {
	AuthCSRFRejections.WithLabelValues(reason).Inc()
}

// RecordAuditEvent records an audit event being appended, and an eviction
// when the log was at capacity.
func RecordAuditEvent(action string, evicted bool) {
	AuditEventsRecorded.WithLabelValues(action).Inc()
	if evicted {
		AuditEventsEvicted.Inc()
	}
}

// RecordContentRead records a content section read and where it was served from
func RecordContentRead(section string, fromDefault bool) {
	source := "store"
	if fromDefault {
		source = "default"
	}
	ContentReads.WithLabelValues(section, source).Inc()
}

// RecordContentWrite records a content section update or reset
func RecordContentWrite(section, operation string) {
	ContentWrites.WithLabelValues(section, operation).Inc()
}
