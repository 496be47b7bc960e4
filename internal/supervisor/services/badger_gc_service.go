// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package services

import (
	"context"
	"time"

	"github.com/mfallows/folio/internal/logging"
)

// ValueLogGarbageCollector triggers a value-log GC cycle on the content
// store. Satisfied by *content.BadgerStore.
type ValueLogGarbageCollector interface {
	RunValueLogGC(discardRatio float64) error
}

// BadgerGCService periodically runs Badger value-log garbage collection.
// Badger never reclaims value-log space on its own; without this loop the
// content store's disk usage only grows.
type BadgerGCService struct {
	store        ValueLogGarbageCollector
	interval     time.Duration
	discardRatio float64
	name         string
}

// NewBadgerGCService creates a GC service. Zero interval falls back to ten
// minutes; a non-positive discard ratio falls back to Badger's recommended 0.5.
func NewBadgerGCService(store ValueLogGarbageCollector, interval time.Duration, discardRatio float64) *BadgerGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if discardRatio <= 0 || discardRatio >= 1 {
		discardRatio = 0.5
	}
	return &BadgerGCService{
		store:        store,
		interval:     interval,
		discardRatio: discardRatio,
		name:         "badger-gc",
	}
}

// Serve implements suture.Service. GC errors are logged rather than
// returned; the next tick retries.
func (s *BadgerGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.store.RunValueLogGC(s.discardRatio); err != nil {
				logging.Warn().
					Err(err).
					Msg("Badger value log GC failed")
			}
		}
	}
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *BadgerGCService) String() string {
	return s.name
}
