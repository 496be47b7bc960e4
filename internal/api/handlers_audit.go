// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package api

import (
	"net/http"
	"strconv"

	"github.com/mfallows/folio/internal/audit"
	"github.com/mfallows/folio/internal/auth"
	"github.com/mfallows/folio/internal/models"
	"github.com/mfallows/folio/internal/validation"
)

// auditQueryParams are the decoded query parameters of the audit
// endpoint. Limit zero means "use the default page size".
type auditQueryParams struct {
	Action string `validate:"omitempty,max=64"`
	IP     string `validate:"omitempty,max=64"`
	Limit  int    `validate:"min=0,max=500"`
	Offset int    `validate:"min=0"`
}

// QueryAudit returns a page of audit events, newest first.
//
// GET /api/v1/admin/audit?action=&ip=&limit=&offset=
//
// Action filters by substring, ip by exact match. Each query is itself
// an audited action.
func (rt *Router) QueryAudit(w http.ResponseWriter, r *http.Request) {
	params, err := parseAuditQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error())
		return
	}

	if verr := validation.ValidateStruct(params); verr != nil {
		apiErr := verr.ToAPIError()
		respondErrorDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	result := rt.auditLog.Query(audit.Filter{
		Action: params.Action,
		IP:     params.IP,
		Limit:  params.Limit,
		Offset: params.Offset,
	})

	rt.auditLog.Record(audit.ActionAuditQuery, auth.ClientIP(r), audit.ResultSuccess)
	respondJSON(w, http.StatusOK, result)
}

// parseAuditQuery decodes the raw query string values.
func parseAuditQuery(r *http.Request) (auditQueryParams, error) {
	params := auditQueryParams{
		Action: r.URL.Query().Get("action"),
		IP:     r.URL.Query().Get("ip"),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return params, errInvalidQueryParam("limit")
		}
		params.Limit = limit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return params, errInvalidQueryParam("offset")
		}
		params.Offset = offset
	}

	return params, nil
}

type errInvalidQueryParam string

func (e errInvalidQueryParam) Error() string {
	return "Invalid query parameter: " + string(e)
}
