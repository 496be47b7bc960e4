// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package api

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/mfallows/folio/internal/logging"
	"github.com/mfallows/folio/internal/models"
)

// maxBodyBytes bounds admin write request bodies. Section payloads are
// a few KB of copy; 1MB leaves generous headroom.
const maxBodyBytes = 1 << 20

// respondJSON writes a success envelope.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	writeEnvelope(w, status, models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// respondError writes an error envelope with a generic message.
func respondError(w http.ResponseWriter, status int, code, message string) {
	writeEnvelope(w, status, models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: code, Message: message},
	})
}

// respondErrorDetails writes an error envelope including structured
// details. Use only for information safe to show the client, such as
// field-level validation messages.
func respondErrorDetails(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	writeEnvelope(w, status, models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: code, Message: message, Details: details},
	})
}

func writeEnvelope(w http.ResponseWriter, status int, payload models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}

// decodeBody parses a JSON request body into dst with a size cap.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(body).Decode(dst)
}
