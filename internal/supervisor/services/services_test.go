// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

// mockHTTPServer implements HTTPServer for lifecycle tests.
type mockHTTPServer struct {
	listenErr   error
	shutdownErr error
	shutdowns   atomic.Int32
	started     chan struct{}
	release     chan struct{}
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (m *mockHTTPServer) ListenAndServe() error {
	close(m.started)
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.release
	return http.ErrServerClosed
}

func (m *mockHTTPServer) Shutdown(ctx context.Context) error {
	m.shutdowns.Add(1)
	close(m.release)
	return m.shutdownErr
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	server := newMockHTTPServer()
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	<-server.started
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}

	if got := server.shutdowns.Load(); got != 1 {
		t.Errorf("Expected 1 shutdown call, got %d", got)
	}
}

func TestHTTPServerServiceListenFailure(t *testing.T) {
	server := newMockHTTPServer()
	server.listenErr = errors.New("address in use")
	svc := NewHTTPServerService(server, time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, server.listenErr) {
		t.Errorf("Expected wrapped listen error, got %v", err)
	}
}

func TestHTTPServerServiceName(t *testing.T) {
	svc := NewHTTPServerService(newMockHTTPServer(), 0)
	if svc.String() != "http-server" {
		t.Errorf("Unexpected service name %q", svc.String())
	}
}

func TestSweeperServiceRunsSweepers(t *testing.T) {
	var calls atomic.Int32
	sweeper := SweeperFunc(func() int {
		calls.Add(1)
		return 2
	})

	svc := NewSweeperService(10*time.Millisecond, sweeper, sweeper)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := svc.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}

	if calls.Load() < 2 {
		t.Errorf("Expected both sweepers to run at least once, got %d calls", calls.Load())
	}
}

func TestSweeperServiceDefaultInterval(t *testing.T) {
	svc := NewSweeperService(0)
	if svc.interval != 5*time.Minute {
		t.Errorf("Expected 5m default interval, got %v", svc.interval)
	}
}

// mockGCStore counts GC invocations.
type mockGCStore struct {
	calls atomic.Int32
	err   error
}

func (m *mockGCStore) RunValueLogGC(discardRatio float64) error {
	m.calls.Add(1)
	return m.err
}

func TestBadgerGCServiceTicks(t *testing.T) {
	store := &mockGCStore{}
	svc := NewBadgerGCService(store, 10*time.Millisecond, 0.5)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}

	if store.calls.Load() == 0 {
		t.Error("Expected at least one GC cycle")
	}
}

func TestBadgerGCServiceSurvivesErrors(t *testing.T) {
	store := &mockGCStore{err: errors.New("gc failed")}
	svc := NewBadgerGCService(store, 10*time.Millisecond, 0.5)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("GC errors should not stop the loop, got %v", err)
	}
	if store.calls.Load() < 2 {
		t.Errorf("Expected repeated GC attempts despite errors, got %d", store.calls.Load())
	}
}

func TestBadgerGCServiceDefaults(t *testing.T) {
	svc := NewBadgerGCService(&mockGCStore{}, 0, 0)
	if svc.interval != 10*time.Minute {
		t.Errorf("Expected 10m default interval, got %v", svc.interval)
	}
	if svc.discardRatio != 0.5 {
		t.Errorf("Expected 0.5 default discard ratio, got %v", svc.discardRatio)
	}
}
