// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package auth

import (
	"net/http"
	"time"

	"github.com/mfallows/folio/internal/audit"
	"github.com/mfallows/folio/internal/logging"
	"github.com/mfallows/folio/internal/metrics"
	"github.com/mfallows/folio/internal/models"
)

// RequireAuth gates admin routes behind a valid session cookie.
//
// Missing, malformed, expired, or tampered tokens all yield the same
// generic 401 response; which case occurred is recorded in the audit
// log only. Invalid cookies are cleared so browsers stop replaying
// them. Sessions whose bound IP no longer matches the requester remain
// valid (mobile clients change addresses mid-session) but the weak
// binding is audited and surfaced on the request identity.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			metrics.RecordSessionVerification("invalid")
			s.auditLog.Record(audit.ActionUnauthorizedAccess, ip, audit.ResultNoSession)
			s.unauthorized(w, r)
			return
		}

		result := s.codec.Verify(cookie.Value, ip)
		switch {
		case result.Expired:
			metrics.RecordSessionVerification("expired")
			s.auditLog.Record(audit.ActionUnauthorizedAccess, ip, audit.ResultSessionExpired)
			s.clearSessionCookie(w)
			s.unauthorized(w, r)
			return
		case !result.Valid:
			metrics.RecordSessionVerification("invalid")
			s.auditLog.Record(audit.ActionUnauthorizedAccess, ip, audit.ResultInvalidSession)
			s.clearSessionCookie(w)
			s.unauthorized(w, r)
			return
		}

		if result.WeakBinding {
			metrics.RecordSessionVerification("weak_binding")
			s.auditLog.Record(audit.ActionSessionCheck, ip, audit.ResultWeakBinding)
			logging.Warn().
				Str("ip", ip).
				Msg("Session IP binding mismatch, allowing with weak binding")
		} else {
			metrics.RecordSessionVerification("valid")
		}

		identity := Identity{
			IP:          ip,
			UserAgent:   r.UserAgent(),
			WeakBinding: result.WeakBinding,
			IssuedAt:    result.IssuedAt,
			ExpiresAt:   result.ExpiresAt,
		}
		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
	})
}

// unauthorized writes the generic 401 envelope.
func (s *Service) unauthorized(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusUnauthorized, models.ErrCodeAuthentication, "Authentication required")
}

// setSessionCookie issues the signed session token cookie.
func (s *Service) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionMaxAge / time.Second),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookie expires the session cookie. MaxAge -1 instructs
// the browser to delete it immediately.
func (s *Service) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// setCSRFCookie mirrors the CSRF token to the client so same-origin
// scripts can echo it back in the X-CSRF-Token header.
func (s *Service) setCSRFCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.csrfTTL / time.Second),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
