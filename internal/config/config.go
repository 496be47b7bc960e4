// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

// Package config loads and validates application configuration from
// defaults, an optional YAML file, and environment variables, in that
// order of increasing precedence.
package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Content  ContentConfig  `koanf:"content"`
	Audit    AuditConfig    `koanf:"audit"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Environment mode: "development", "staging", "production".
	// Production mode refuses to start with weak or missing secrets.
	Environment string `koanf:"environment"`
}

// SecurityConfig holds authentication, session, and rate limiting settings.
type SecurityConfig struct {
	// AdminPassword is the plaintext admin password. Compared in constant
	// time. Prefer AdminPasswordHash in production.
	AdminPassword string `koanf:"admin_password"`

	// AdminPasswordHash is a bcrypt hash of the admin password. When set,
	// it takes precedence over AdminPassword.
	AdminPasswordHash string `koanf:"admin_password_hash"`

	// SessionSecret is the HMAC key for signing session tokens. Must be
	// at least 32 characters in production. When empty in development, a
	// random ephemeral secret is generated at startup (sessions will not
	// survive restarts).
	SessionSecret string `koanf:"session_secret"`

	// SessionMaxAge is the lifetime of an admin session token.
	SessionMaxAge time.Duration `koanf:"session_max_age"`

	// CSRFTokenTTL is the lifetime of a one-time CSRF token.
	CSRFTokenTTL time.Duration `koanf:"csrf_token_ttl"`

	// Login rate limiting: LoginRateLimit attempts per LoginRateWindow
	// per client IP.
	LoginRateLimit  int           `koanf:"login_rate_limit"`
	LoginRateWindow time.Duration `koanf:"login_rate_window"`

	// General API rate limiting per client IP.
	APIRateLimit  int           `koanf:"api_rate_limit"`
	APIRateWindow time.Duration `koanf:"api_rate_window"`

	CORSOrigins    []string `koanf:"cors_origins"`
	TrustedProxies []string `koanf:"trusted_proxies"`
}

// ContentConfig holds portfolio content storage settings.
type ContentConfig struct {
	// Store specifies the content storage backend: "badger" (default) or
	// "memory". Memory is intended for tests and ephemeral deployments.
	Store string `koanf:"store"`

	// Path is the BadgerDB data directory (required when store=badger).
	Path string `koanf:"path"`
}

// AuditConfig holds audit log settings.
type AuditConfig struct {
	// Capacity is the maximum number of audit events retained in memory.
	// The oldest event is evicted when the log is full.
	Capacity int `koanf:"capacity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// CookieSecure reports whether session and CSRF cookies should carry the
// Secure attribute. Development mode is the only exception, so that local
// plain-HTTP testing works.
func (c *Config) CookieSecure() bool {
	return !c.IsDevelopment()
}
