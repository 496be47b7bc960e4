// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("expected default environment 'development', got %q", cfg.Server.Environment)
	}
	if cfg.Security.SessionMaxAge != 12*time.Hour {
		t.Errorf("expected session max age 12h, got %s", cfg.Security.SessionMaxAge)
	}
	if cfg.Security.CSRFTokenTTL != 30*time.Minute {
		t.Errorf("expected CSRF TTL 30m, got %s", cfg.Security.CSRFTokenTTL)
	}
	if cfg.Security.LoginRateLimit != 5 || cfg.Security.LoginRateWindow != 10*time.Minute {
		t.Errorf("expected login limiter 5/10m, got %d/%s",
			cfg.Security.LoginRateLimit, cfg.Security.LoginRateWindow)
	}
	if cfg.Security.APIRateLimit != 100 || cfg.Security.APIRateWindow != time.Minute {
		t.Errorf("expected API limiter 100/1m, got %d/%s",
			cfg.Security.APIRateLimit, cfg.Security.APIRateWindow)
	}
	if cfg.Content.Store != "badger" {
		t.Errorf("expected default content store 'badger', got %q", cfg.Content.Store)
	}
	if cfg.Audit.Capacity != 1000 {
		t.Errorf("expected default audit capacity 1000, got %d", cfg.Audit.Capacity)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("ADMIN_SESSION_SECRET", strings.Repeat("s", 32))
	t.Setenv("ADMIN_PASSWORD", "correct-horse-battery-staple")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CONTENT_STORE", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090 from env, got %d", cfg.Server.Port)
	}
	if cfg.Server.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Server.Environment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %q", cfg.Logging.Level)
	}
	if cfg.Content.Store != "memory" {
		t.Errorf("expected content store 'memory', got %q", cfg.Content.Store)
	}
}

func TestLoadCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://example.com, https://admin.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Security.CORSOrigins) != 2 {
		t.Fatalf("expected 2 CORS origins, got %d: %v",
			len(cfg.Security.CORSOrigins), cfg.Security.CORSOrigins)
	}
	if cfg.Security.CORSOrigins[1] != "https://admin.example.com" {
		t.Errorf("expected trimmed origin, got %q", cfg.Security.CORSOrigins[1])
	}
}

func TestValidateProductionRequiresSecret(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Server.Environment = "production"
	cfg.Security.AdminPassword = "some-password"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing session secret in production")
	}
	if !strings.Contains(err.Error(), "ADMIN_SESSION_SECRET") {
		t.Errorf("expected session secret error, got: %v", err)
	}
}

func TestValidateProductionRequiresPassword(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Server.Environment = "production"
	cfg.Security.SessionSecret = strings.Repeat("s", 32)

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing admin credentials in production")
	}
	if !strings.Contains(err.Error(), "ADMIN_PASSWORD") {
		t.Errorf("expected admin password error, got: %v", err)
	}
}

func TestValidateShortSecret(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Security.SessionSecret = "too-short"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for short session secret")
	}
}

func TestValidateDevelopmentAllowsEmptySecret(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected development defaults to validate, got: %v", err)
	}
}

func TestValidateBadPasswordHash(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Security.AdminPasswordHash = "plaintext-not-a-hash"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for non-bcrypt password hash")
	}
	if !strings.Contains(err.Error(), "bcrypt") {
		t.Errorf("expected bcrypt hash error, got: %v", err)
	}
}

func TestValidateBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"bad environment", func(c *Config) { c.Server.Environment = "prod" }},
		{"zero login limit", func(c *Config) { c.Security.LoginRateLimit = 0 }},
		{"zero api limit", func(c *Config) { c.Security.APIRateLimit = 0 }},
		{"tiny session age", func(c *Config) { c.Security.SessionMaxAge = time.Second }},
		{"bad content store", func(c *Config) { c.Content.Store = "redis" }},
		{"badger without path", func(c *Config) { c.Content.Path = "" }},
		{"zero audit capacity", func(c *Config) { c.Audit.Capacity = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"ADMIN_PASSWORD", "security.admin_password"},
		{"ADMIN_PASSWORD_HASH", "security.admin_password_hash"},
		{"ADMIN_SESSION_SECRET", "security.session_secret"},
		{"CONTENT_STORE_PATH", "content.path"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},     // unmapped system var is skipped
		{"HOSTNAME", ""}, // unmapped system var is skipped
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCookieSecure(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if cfg.CookieSecure() {
		t.Error("expected insecure cookies in development")
	}

	cfg.Server.Environment = "production"
	if !cfg.CookieSecure() {
		t.Error("expected secure cookies in production")
	}

	cfg.Server.Environment = "staging"
	if !cfg.CookieSecure() {
		t.Error("expected secure cookies in staging")
	}
}
