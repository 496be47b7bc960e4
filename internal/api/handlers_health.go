// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package api

import (
	"net/http"
	"runtime"
	"time"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Health reports service status and uptime.
//
// GET /api/v1/health
func (rt *Router) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"version":   Version,
		"goVersion": runtime.Version(),
		"uptime":    time.Since(rt.startTime).Round(time.Second).String(),
	})
}

// HealthLive is the liveness probe: the process is serving requests.
//
// GET /api/v1/health/live
func (rt *Router) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe. Content reads degrade to embedded
// defaults on store failure, so readiness only requires the section
// resolver to answer.
//
// GET /api/v1/health/ready
func (rt *Router) HealthReady(w http.ResponseWriter, r *http.Request) {
	if _, err := rt.content.GetSection(r.Context(), "hero"); err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Content resolver unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
