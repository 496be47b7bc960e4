// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mfallows/folio/internal/logging"
	"github.com/mfallows/folio/internal/metrics"
	"github.com/mfallows/folio/internal/models"
	"github.com/mfallows/folio/internal/validation"
)

// ErrUnknownSection is returned for section names outside
// models.KnownSections.
var ErrUnknownSection = errors.New("unknown content section")

// updatedAtKey is a reserved key the service adds to stored payloads.
// It never collides with section fields: the sanitizer drops anything
// not in the section schema before a payload reaches the store.
const updatedAtKey = "_updatedAt"

// Service resolves section reads through the store with embedded
// defaults as fallback, and sanitizes admin writes before they are
// persisted. Public pages always get a renderable payload even when a
// section was never edited or the store is unavailable.
type Service struct {
	store    Store
	defaults map[string]map[string]interface{}
	now      func() time.Time
}

// NewService creates a content service over store.
func NewService(store Store) (*Service, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, fmt.Errorf("load content defaults: %w", err)
	}

	return &Service{
		store:    store,
		defaults: defaults,
		now:      time.Now,
	}, nil
}

// GetSection returns a section's current payload: the stored value when
// one exists, the embedded default otherwise. Store failures degrade to
// the default so public pages stay up during store outages.
func (s *Service) GetSection(ctx context.Context, name string) (models.Section, error) {
	if !models.IsKnownSection(name) {
		return models.Section{}, ErrUnknownSection
	}

	data, err := s.store.Get(ctx, name)
	switch {
	case err == nil:
		section := models.Section{Name: name, Data: data}
		section.UpdatedAt = extractUpdatedAt(section.Data)
		metrics.RecordContentRead(name, false)
		return section, nil
	case errors.Is(err, ErrSectionNotFound):
		// Never edited; serve the default.
	default:
		metrics.ContentStoreErrors.WithLabelValues("get").Inc()
		logging.Warn().Err(err).Str("section", name).
			Msg("Content store read failed, serving default")
	}

	metrics.RecordContentRead(name, true)
	return models.Section{Name: name, Data: copySection(s.defaults[name])}, nil
}

// GetAll returns every known section in display order.
func (s *Service) GetAll(ctx context.Context) ([]models.Section, error) {
	sections := make([]models.Section, 0, len(models.KnownSections))
	for _, name := range models.KnownSections {
		section, err := s.GetSection(ctx, name)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// UpdateSection sanitizes payload against the section's schema and
// persists it. Sanitization failures are returned as field errors with
// nothing written; unknown payload fields are silently dropped.
func (s *Service) UpdateSection(ctx context.Context, name string, payload map[string]interface{}) (models.Section, []string, error) {
	schema, ok := SchemaFor(name)
	if !ok {
		return models.Section{}, nil, ErrUnknownSection
	}

	result := validation.Sanitize(payload, schema)
	if !result.Valid {
		metrics.ValidationFailures.WithLabelValues(name).Inc()
		return models.Section{}, result.Errors, nil
	}

	updatedAt := s.now().UTC()
	stored := result.Data
	stored[updatedAtKey] = updatedAt.Format(time.RFC3339)

	if err := s.store.Set(ctx, name, stored); err != nil {
		metrics.ContentStoreErrors.WithLabelValues("set").Inc()
		return models.Section{}, nil, fmt.Errorf("store section %q: %w", name, err)
	}

	metrics.RecordContentWrite(name, "update")
	delete(stored, updatedAtKey)
	return models.Section{Name: name, Data: stored, UpdatedAt: updatedAt}, nil, nil
}

// DeleteSection removes a section's stored value, reverting reads to
// the embedded default.
func (s *Service) DeleteSection(ctx context.Context, name string) error {
	if !models.IsKnownSection(name) {
		return ErrUnknownSection
	}

	if err := s.store.Delete(ctx, name); err != nil {
		metrics.ContentStoreErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("delete section %q: %w", name, err)
	}

	metrics.RecordContentWrite(name, "reset")
	return nil
}

// extractUpdatedAt pulls the reserved timestamp out of a stored payload.
func extractUpdatedAt(data map[string]interface{}) time.Time {
	raw, ok := data[updatedAtKey].(string)
	if !ok {
		return time.Time{}
	}
	delete(data, updatedAtKey)

	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func copySection(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
