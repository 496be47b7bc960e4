// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfallows/folio/internal/audit"
	"github.com/mfallows/folio/internal/auth"
	"github.com/mfallows/folio/internal/content"
	"github.com/mfallows/folio/internal/logging"
	"github.com/mfallows/folio/internal/models"
)

// GetAllContent returns every portfolio section.
//
// GET /api/v1/content
func (rt *Router) GetAllContent(w http.ResponseWriter, r *http.Request) {
	sections, err := rt.content.GetAll(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load content sections")
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"sections": sections})
}

// GetContentSection returns one portfolio section.
//
// GET /api/v1/content/{section}
func (rt *Router) GetContentSection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "section")

	section, err := rt.content.GetSection(r.Context(), name)
	switch {
	case errors.Is(err, content.ErrUnknownSection):
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Unknown section")
		return
	case err != nil:
		logging.Error().Err(err).Str("section", name).Msg("Failed to load content section")
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, section)
}

// UpdateContentSection sanitizes and persists an admin edit.
//
// PUT /api/v1/admin/content/{section}
func (rt *Router) UpdateContentSection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "section")
	ip := auth.ClientIP(r)

	var payload map[string]interface{}
	if err := decodeBody(w, r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Invalid request body")
		return
	}

	section, fieldErrs, err := rt.content.UpdateSection(r.Context(), name, payload)
	switch {
	case errors.Is(err, content.ErrUnknownSection):
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Unknown section")
		return
	case err != nil:
		logging.Error().Err(err).Str("section", name).Msg("Failed to store content section")
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Server error")
		return
	case len(fieldErrs) > 0:
		// Field-level details go to both the client (the admin is the
		// trusted editor fixing their input) and the audit trail.
		rt.auditLog.Record(audit.ActionContentUpdate, ip, audit.ResultValidationFailed)
		respondErrorDetails(w, http.StatusBadRequest, models.ErrCodeValidation,
			"Validation failed", map[string]interface{}{"fields": fieldErrs})
		return
	}

	rt.auditLog.Append(audit.Event{
		Action: audit.ActionContentUpdate,
		IP:     ip,
		Result: audit.ResultSuccess,
		UserID: "admin",
	})
	respondJSON(w, http.StatusOK, section)
}

// DeleteContentSection reverts a section to its embedded default.
//
// DELETE /api/v1/admin/content/{section}
func (rt *Router) DeleteContentSection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "section")
	ip := auth.ClientIP(r)

	err := rt.content.DeleteSection(r.Context(), name)
	switch {
	case errors.Is(err, content.ErrUnknownSection):
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Unknown section")
		return
	case err != nil:
		logging.Error().Err(err).Str("section", name).Msg("Failed to delete content section")
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Server error")
		return
	}

	rt.auditLog.Append(audit.Event{
		Action: audit.ActionContentDelete,
		IP:     ip,
		Result: audit.ResultSuccess,
		UserID: "admin",
	})
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
