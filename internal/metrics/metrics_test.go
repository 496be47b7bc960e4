// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/content", "200"))

	RecordAPIRequest("GET", "/api/v1/content", "200", 10*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/content", "200"))
	if after != before+1 {
		t.Errorf("expected counter to increment by 1, got %f -> %f", before, after)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("expected gauge %f after increment, got %f", before+1, got)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("expected gauge %f after decrement, got %f", before, got)
	}
}

func TestRecordLoginAttempt(t *testing.T) {
	before := testutil.ToFloat64(AuthLoginAttempts.WithLabelValues("bad_password"))

	RecordLoginAttempt("bad_password")

	after := testutil.ToFloat64(AuthLoginAttempts.WithLabelValues("bad_password"))
	if after != before+1 {
		t.Errorf("expected counter to increment by 1, got %f -> %f", before, after)
	}
}

func TestRecordAuditEvent(t *testing.T) {
	recordedBefore := testutil.ToFloat64(AuditEventsRecorded.WithLabelValues("LOGIN_SUCCESS"))
	evictedBefore := testutil.ToFloat64(AuditEventsEvicted)

	RecordAuditEvent("LOGIN_SUCCESS", false)
	RecordAuditEvent("LOGIN_SUCCESS", true)

	recordedAfter := testutil.ToFloat64(AuditEventsRecorded.WithLabelValues("LOGIN_SUCCESS"))
	evictedAfter := testutil.ToFloat64(AuditEventsEvicted)

	if recordedAfter != recordedBefore+2 {
		t.Errorf("expected 2 recorded events, got %f -> %f", recordedBefore, recordedAfter)
	}
	if evictedAfter != evictedBefore+1 {
		t.Errorf("expected 1 eviction, got %f -> %f", evictedBefore, evictedAfter)
	}
}

func TestRecordContentRead(t *testing.T) {
	storeBefore := testutil.ToFloat64(ContentReads.WithLabelValues("hero", "store"))
	defaultBefore := testutil.ToFloat64(ContentReads.WithLabelValues("hero", "default"))

	RecordContentRead("hero", false)
	RecordContentRead("hero", true)

	if got := testutil.ToFloat64(ContentReads.WithLabelValues("hero", "store")); got != storeBefore+1 {
		t.Errorf("expected store read counter to increment, got %f -> %f", storeBefore, got)
	}
	if got := testutil.ToFloat64(ContentReads.WithLabelValues("hero", "default")); got != defaultBefore+1 {
		t.Errorf("expected default read counter to increment, got %f -> %f", defaultBefore, got)
	}
}
