// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

// Package content owns the portfolio section store: a key-value backend
// (badger in production, memory in tests) with embedded defaults as the
// read fallback for sections never edited through the admin panel.
package content

import (
	"context"
	"errors"
	"sync"
)

// ErrSectionNotFound is returned when a section has no stored value.
// Callers fall back to the embedded defaults.
var ErrSectionNotFound = errors.New("content section not found")

// Store is the persistence backend for section payloads. Values are
// opaque JSON objects; the store does not interpret them.
type Store interface {
	// Get returns the stored payload for a section, or
	// ErrSectionNotFound when nothing has been written.
	Get(ctx context.Context, section string) (map[string]interface{}, error)

	// Set persists a section payload, replacing any previous value.
	Set(ctx context.Context, section string, data map[string]interface{}) error

	// Delete removes a section's stored value. Deleting an absent
	// section is not an error.
	Delete(ctx context.Context, section string) error

	// Keys lists the sections that currently have stored values.
	Keys(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// MemoryStore is an in-memory Store for tests and the memory backend.
type MemoryStore struct {
	mu       sync.RWMutex
	sections map[string]map[string]interface{}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sections: make(map[string]map[string]interface{}),
	}
}

// Get returns the stored payload for a section.
func (s *MemoryStore) Get(ctx context.Context, section string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.sections[section]
	if !ok {
		return nil, ErrSectionNotFound
	}

	// Shallow copy so callers cannot mutate the stored map.
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out, nil
}

// Set persists a section payload.
func (s *MemoryStore) Set(ctx context.Context, section string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(map[string]interface{}, len(data))
	for k, v := range data {
		stored[k] = v
	}
	s.sections[section] = stored
	return nil
}

// Delete removes a section's stored value.
func (s *MemoryStore) Delete(ctx context.Context, section string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sections, section)
	return nil
}

// Keys lists sections with stored values.
func (s *MemoryStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.sections))
	for k := range s.sections {
		keys = append(keys, k)
	}
	return keys, nil
}

// Close is a no-op for the memory backend.
func (s *MemoryStore) Close() error {
	return nil
}
