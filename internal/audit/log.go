// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package audit

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mfallows/folio/internal/metrics"
)

// Log is a bounded, append-only audit log. When full, each append evicts
// exactly the single oldest event. Safe for concurrent use.
type Log struct {
	mu       sync.RWMutex
	events   []Event
	capacity int

	// now is replaceable in tests.
	now func() time.Time
}

// DefaultCapacity is the number of events retained when no capacity is given.
const DefaultCapacity = 1000

// NewLog creates an audit log retaining at most capacity events.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		events:   make([]Event, 0, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

// Append records an event. The ID and timestamp are assigned here.
func (l *Log) Append(event Event) {
	l.mu.Lock()

	event.ID = uuid.NewString()
	event.Timestamp = l.now()

	evicted := false
	if len(l.events) >= l.capacity {
		// Drop the single oldest entry.
		copy(l.events, l.events[1:])
		l.events = l.events[:len(l.events)-1]
		evicted = true
	}
	l.events = append(l.events, event)

	l.mu.Unlock()

	metrics.RecordAuditEvent(string(event.Action), evicted)
}

// Record is a convenience wrapper around Append.
func (l *Log) Record(action Action, ip, result string) {
	l.Append(Event{Action: action, IP: ip, Result: result})
}

// QueryResult holds one page of audit events plus the total match count
// for pagination.
type QueryResult struct {
	Events []Event `json:"events"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// Query returns events matching the filter, newest first. Action matches
// by substring, IP by exact value. Pagination is applied after sorting.
func (l *Log) Query(filter Filter) QueryResult {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	if limit > MaxQueryLimit {
		limit = MaxQueryLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var matched []Event
	for i := len(l.events) - 1; i >= 0; i-- { // newest first
		event := l.events[i]
		if filter.Action != "" && !strings.Contains(string(event.Action), filter.Action) {
			continue
		}
		if filter.IP != "" && event.IP != filter.IP {
			continue
		}
		matched = append(matched, event)
	}

	result := QueryResult{
		Total:  len(matched),
		Limit:  limit,
		Offset: offset,
	}

	if offset >= len(matched) {
		result.Events = []Event{}
		return result
	}

	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	result.Events = matched[offset:end]
	return result
}

// Len returns the number of retained events.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// Clear removes all events (for testing).
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = l.events[:0]
}
