// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package auth

import (
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"github.com/mfallows/folio/internal/audit"
	"github.com/mfallows/folio/internal/logging"
	"github.com/mfallows/folio/internal/metrics"
	"github.com/mfallows/folio/internal/models"
)

// maxLoginBodyBytes bounds the login request body. Password plus CSRF
// token fit comfortably in 4KB.
const maxLoginBodyBytes = 4096

// HandleCSRF issues a one-time CSRF token.
//
// GET /api/v1/auth/csrf
//
// The token is returned in the body for clients that echo it via the
// X-CSRF-Token header, and mirrored in a cookie for form posts.
func (s *Service) HandleCSRF(w http.ResponseWriter, r *http.Request) {
	token, expiresAt := s.csrf.Generate()
	s.setCSRFCookie(w, token)
	respondSuccess(w, http.StatusOK, models.CSRFResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// HandleLogin authenticates the admin and issues a session cookie.
//
// POST /api/v1/auth/login
//
// Checks run in order: rate limit, CSRF token, password configuration,
// password match. Every outcome is audited with its specific reason;
// the client only ever sees a generic message for each status code.
func (s *Service) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ip := ClientIP(r)

	result := s.loginLimiter.Check(ip)
	if !result.Allowed {
		metrics.RecordLoginAttempt("rate_limited")
		metrics.APIRateLimitHits.WithLabelValues("login").Inc()
		s.auditLog.Record(audit.ActionLogin, ip, audit.ResultRateLimited)
		retryAfter := int(time.Until(result.RetryAt).Seconds()) + 1
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		respondError(w, http.StatusTooManyRequests, models.ErrCodeRateLimit,
			"Too many login attempts, try again later")
		return
	}

	var req models.LoginRequest
	body := http.MaxBytesReader(w, r.Body, maxLoginBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		metrics.RecordLoginAttempt("failure")
		s.auditLog.Record(audit.ActionLogin, ip, audit.ResultValidationFailed)
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation,
			"Invalid request body")
		return
	}

	// Header wins over body when both carry a CSRF token.
	csrfToken := r.Header.Get("X-CSRF-Token")
	if csrfToken == "" {
		csrfToken = req.CSRFToken
	}
	if !s.csrf.Verify(csrfToken) {
		metrics.RecordLoginAttempt("failure")
		s.auditLog.Record(audit.ActionLogin, ip, audit.ResultInvalidCSRF)
		respondError(w, http.StatusForbidden, models.ErrCodeCSRF,
			"Invalid request, refresh and retry")
		return
	}

	if !s.password.Configured() {
		metrics.RecordLoginAttempt("failure")
		s.auditLog.Record(audit.ActionLogin, ip, audit.ResultNoPasswordConfigured)
		logging.Error().Msg("Login rejected: no admin password configured")
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal,
			"Server configuration error")
		return
	}

	if !s.password.Verify(req.Password) {
		metrics.RecordLoginAttempt("failure")
		s.auditLog.Record(audit.ActionLogin, ip, audit.ResultInvalidPassword)
		respondError(w, http.StatusUnauthorized, models.ErrCodeAuthentication,
			"Invalid credentials")
		return
	}

	token := s.codec.Issue(ip)

	// A successful login clears the failure window for this IP.
	s.loginLimiter.Reset(ip)
	s.setSessionCookie(w, token)
	metrics.RecordLoginAttempt("success")
	s.auditLog.Append(audit.Event{
		Action: audit.ActionLogin,
		IP:     ip,
		Result: audit.ResultSuccess,
		UserID: "admin",
	})
	logging.Info().Str("ip", ip).Msg("Admin login")

	respondSuccess(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleLogout clears the session cookie.
//
// POST /api/v1/auth/logout
//
// Always succeeds, with or without a live session; logging out an
// already-expired session is not an error worth surfacing.
func (s *Service) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ip := ClientIP(r)
	s.clearSessionCookie(w)
	s.auditLog.Record(audit.ActionLogout, ip, audit.ResultSuccess)
	respondSuccess(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleSession reports whether the caller holds a valid session.
//
// GET /api/v1/auth/session
//
// Returns 200 either way so the frontend can render login state without
// treating "not logged in" as an error path.
func (s *Service) HandleSession(w http.ResponseWriter, r *http.Request) {
	ip := ClientIP(r)

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		respondSuccess(w, http.StatusOK, models.SessionResponse{Authenticated: false})
		return
	}

	result := s.codec.Verify(cookie.Value, ip)
	if !result.Valid || result.Expired {
		s.clearSessionCookie(w)
		respondSuccess(w, http.StatusOK, models.SessionResponse{Authenticated: false})
		return
	}

	if result.WeakBinding {
		s.auditLog.Record(audit.ActionSessionCheck, ip, audit.ResultWeakBinding)
	}

	respondSuccess(w, http.StatusOK, models.SessionResponse{
		Authenticated: true,
		WeakBinding:   result.WeakBinding,
		IssuedAt:      &result.IssuedAt,
		ExpiresAt:     &result.ExpiresAt,
	})
}

// respondSuccess writes the standard success envelope.
func respondSuccess(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// respondError writes the standard error envelope.
func respondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: code, Message: message},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}
