// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

// Package middleware provides HTTP middleware shared across the router:
// request-ID propagation, prometheus instrumentation, and gzip response
// compression. Auth-specific middleware lives in internal/auth.
package middleware
