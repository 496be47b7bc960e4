// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

// Package audit provides security audit logging.
// It records security-relevant events in a bounded in-memory log for the
// admin panel's recent-events view. History does not survive restarts.
package audit

import (
	"time"
)

// Action identifies what kind of security event occurred.
type Action string

const (
	ActionLogin              Action = "login"
	ActionLogout             Action = "logout"
	ActionSessionCheck       Action = "session_check"
	ActionUnauthorizedAccess Action = "unauthorized_access"
	ActionContentUpdate      Action = "content_update"
	ActionContentDelete      Action = "content_delete"
	ActionAuditQuery         Action = "audit_query"
)

// Result values recorded with events. Failed logins and rejected requests
// carry the specific reason here; HTTP responses only ever see a generic
// message.
const (
	ResultSuccess              = "SUCCESS"
	ResultInvalidPassword      = "INVALID_PASSWORD"
	ResultInvalidCSRF          = "INVALID_CSRF"
	ResultRateLimited          = "RATE_LIMITED"
	ResultNoSession            = "NO_SESSION"
	ResultInvalidSession       = "INVALID_SESSION"
	ResultSessionExpired       = "SESSION_EXPIRED"
	ResultWeakBinding          = "WEAK_BINDING"
	ResultValidationFailed     = "VALIDATION_FAILED"
	ResultNoPasswordConfigured = "ERROR_NO_PASSWORD_CONFIGURED"
)

// Event is one security audit record. Immutable once appended.
type Event struct {
	// ID is a unique identifier for this event.
	ID string `json:"id"`

	// Timestamp when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Action categorizes the event.
	Action Action `json:"action"`

	// IP is the client address the event originated from.
	IP string `json:"ip"`

	// Result describes the outcome, one of the Result constants above
	// or a free-form detail string.
	Result string `json:"result"`

	// UserID identifies the acting user when authenticated.
	UserID string `json:"userId,omitempty"`

	// RequestID from the originating HTTP request.
	RequestID string `json:"requestId,omitempty"`
}

// Filter defines query options for reading the audit log.
type Filter struct {
	// Action filters by substring match on the action name.
	Action string `json:"action,omitempty"`

	// IP filters by exact match on the client address.
	IP string `json:"ip,omitempty"`

	// Limit is the maximum number of results, capped at MaxQueryLimit.
	Limit int `json:"limit,omitempty"`

	// Offset for pagination, applied after newest-first sorting.
	Offset int `json:"offset,omitempty"`
}

// Query limits.
const (
	// MaxQueryLimit caps the number of events one query may return.
	MaxQueryLimit = 500

	// DefaultQueryLimit applies when a filter omits Limit.
	DefaultQueryLimit = 100
)
