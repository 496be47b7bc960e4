// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

// Command server runs the Folio backend: the public portfolio content API
// and the session-authenticated admin CMS, under a suture supervision tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mfallows/folio/internal/api"
	"github.com/mfallows/folio/internal/audit"
	"github.com/mfallows/folio/internal/auth"
	"github.com/mfallows/folio/internal/config"
	"github.com/mfallows/folio/internal/content"
	"github.com/mfallows/folio/internal/logging"
	"github.com/mfallows/folio/internal/supervisor"
	"github.com/mfallows/folio/internal/supervisor/services"
)

const sweepInterval = 5 * time.Minute

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	// Refuse to start with an unusable security posture. In production this
	// rejects missing admin passwords and short session secrets.
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("Invalid configuration")
	}

	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Str("content_store", cfg.Content.Store).
		Msg("Starting Folio")

	// Content store: Badger on disk, or in-memory for development.
	store, err := newContentStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open content store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing content store")
		}
	}()

	contentSvc, err := content.NewService(store)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load default content")
	}

	auditLog := audit.NewLog(cfg.Audit.Capacity)

	password := auth.NewPasswordVerifier(cfg.Security.AdminPassword, cfg.Security.AdminPasswordHash)
	authSvc := auth.NewService(auth.Config{
		SessionSecret:   cfg.Security.SessionSecret,
		SessionMaxAge:   cfg.Security.SessionMaxAge,
		CSRFTokenTTL:    cfg.Security.CSRFTokenTTL,
		LoginRateLimit:  cfg.Security.LoginRateLimit,
		LoginRateWindow: cfg.Security.LoginRateWindow,
		CookieSecure:    cfg.CookieSecure(),
	}, password, auditLog)

	router := api.NewRouter(cfg, authSvc, contentSvc, auditLog)
	handler := router.Setup()

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	tree.AddMaintenanceService(services.NewSweeperService(sweepInterval,
		authSvc,
		services.SweeperFunc(router.APILimiter().CleanupExpired),
	))
	if badgerStore, ok := store.(*content.BadgerStore); ok {
		tree.AddMaintenanceService(services.NewBadgerGCService(badgerStore, 10*time.Minute, 0.5))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutting down, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Stopped gracefully")
}

func newContentStore(cfg *config.Config) (content.Store, error) {
	switch cfg.Content.Store {
	case "badger":
		return content.NewBadgerStore(cfg.Content.Path)
	case "memory":
		return content.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown content store %q", cfg.Content.Store)
	}
}
