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

// Sweeper is anything that can purge its expired state and report how many
// entries it removed.
//
// Satisfied by *auth.Service (CSRF tokens plus login limiter windows);
// wrap other cleanup functions with SweeperFunc.
type Sweeper interface {
	Sweep() int
}

// SweeperFunc adapts a plain function to the Sweeper interface.
type SweeperFunc func() int

// Sweep implements Sweeper.
func (f SweeperFunc) Sweep() int { return f() }

// SweeperService periodically runs a set of sweepers under supervision.
// Expired CSRF tokens and stale rate-limit windows are only memory, but an
// unswept map grows without bound under scanner traffic.
type SweeperService struct {
	sweepers []Sweeper
	interval time.Duration
	name     string
}

// NewSweeperService creates a sweeper running every interval. Intervals of
// zero or less fall back to five minutes.
func NewSweeperService(interval time.Duration, sweepers ...Sweeper) *SweeperService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SweeperService{
		sweepers: sweepers,
		interval: interval,
		name:     "expiry-sweeper",
	}
}

// Serve implements suture.Service. Runs until the context is canceled.
func (s *SweeperService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := s.sweepAll(); removed > 0 {
				logging.Debug().
					Int("removed", removed).
					Msg("Swept expired auth state")
			}
		}
	}
}

func (s *SweeperService) sweepAll() int {
	total := 0
	for _, sw := range s.sweepers {
		total += sw.Sweep()
	}
	return total
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *SweeperService) String() string {
	return s.name
}
