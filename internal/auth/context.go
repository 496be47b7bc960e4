// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package auth

import (
	"context"
	"net"
	"net/http"
	"time"
)

// Identity describes the authenticated admin request that passed the
// session gate. Downstream handlers use it for audit calls.
type Identity struct {
	// IP is the requesting client address.
	IP string

	// UserAgent of the requesting client.
	UserAgent string

	// WeakBinding is set when the session token was issued for a
	// different IP than the requesting one.
	WeakBinding bool

	// IssuedAt and ExpiresAt of the session token.
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type contextKey string

const identityKey contextKey = "auth_identity"

// ContextWithIdentity returns a context carrying the authenticated identity.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extracts the authenticated identity, if present.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// ClientIP extracts the client address from a request. The router runs
// chi's RealIP middleware first, so RemoteAddr already reflects
// X-Forwarded-For / X-Real-IP where those are trusted.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
