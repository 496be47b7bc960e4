// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package models

import (
	"time"
)

// LoginRequest is the body of POST /api/v1/auth/login.
// The CSRF token may alternatively arrive via the X-CSRF-Token header;
// the header wins when both are present.
type LoginRequest struct {
	Password  string `json:"password"`
	CSRFToken string `json:"csrfToken,omitempty"`
}

// CSRFResponse is returned by GET /api/v1/auth/csrf. The token is
// single-use and expires at ExpiresAt.
type CSRFResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionResponse describes the current admin session state. WeakBinding
// is set when the session is valid but presented from a different IP than
// it was issued to.
type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	WeakBinding   bool       `json:"weakBinding,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	IssuedAt      *time.Time `json:"issuedAt,omitempty"`
}
