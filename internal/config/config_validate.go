// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package config

import (
	"fmt"
	"strings"
	"time"
)

// minSessionSecretLength is the minimum allowed HMAC secret length.
// Shorter secrets are trivially brute-forceable.
const minSessionSecretLength = 32

// validEnvironments lists the accepted ENVIRONMENT values.
var validEnvironments = []string{"development", "staging", "production"}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateContent(); err != nil {
		return err
	}

	if err := c.validateAudit(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates HTTP server settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.Timeout < time.Second {
		return fmt.Errorf("HTTP_TIMEOUT must be at least 1s, got %s", c.Server.Timeout)
	}

	for _, env := range validEnvironments {
		if c.Server.Environment == env {
			return nil
		}
	}
	return fmt.Errorf("ENVIRONMENT must be one of %s, got %q",
		strings.Join(validEnvironments, ", "), c.Server.Environment)
}

// validateSecurity validates authentication and rate limiting settings.
// Production mode refuses weak or missing secrets; development mode allows
// an empty session secret (an ephemeral secret is generated at startup).
func (c *Config) validateSecurity() error {
	if err := c.validateSessionSecret(); err != nil {
		return err
	}
	if err := c.validateAdminCredentials(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// validateSessionSecret validates the session signing secret
func (c *Config) validateSessionSecret() error {
	if c.Security.SessionSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("ADMIN_SESSION_SECRET is required in production")
		}
		return nil
	}

	if len(c.Security.SessionSecret) < minSessionSecretLength {
		return fmt.Errorf("ADMIN_SESSION_SECRET must be at least %d characters, got %d",
			minSessionSecretLength, len(c.Security.SessionSecret))
	}
	return nil
}

// validateAdminCredentials validates the admin password configuration
func (c *Config) validateAdminCredentials() error {
	if c.Security.AdminPasswordHash != "" {
		if !strings.HasPrefix(c.Security.AdminPasswordHash, "$2a$") &&
			!strings.HasPrefix(c.Security.AdminPasswordHash, "$2b$") &&
			!strings.HasPrefix(c.Security.AdminPasswordHash, "$2y$") {
			return fmt.Errorf("ADMIN_PASSWORD_HASH must be a bcrypt hash")
		}
		return nil
	}

	if c.Security.AdminPassword == "" && c.IsProduction() {
		return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required in production")
	}
	return nil
}

// validateRateLimits validates rate limiter settings
func (c *Config) validateRateLimits() error {
	if c.Security.LoginRateLimit < 1 {
		return fmt.Errorf("LOGIN_RATE_LIMIT must be at least 1, got %d", c.Security.LoginRateLimit)
	}
	if c.Security.LoginRateWindow < time.Second {
		return fmt.Errorf("LOGIN_RATE_WINDOW must be at least 1s, got %s", c.Security.LoginRateWindow)
	}
	if c.Security.APIRateLimit < 1 {
		return fmt.Errorf("API_RATE_LIMIT must be at least 1, got %d", c.Security.APIRateLimit)
	}
	if c.Security.APIRateWindow < time.Second {
		return fmt.Errorf("API_RATE_WINDOW must be at least 1s, got %s", c.Security.APIRateWindow)
	}
	if c.Security.SessionMaxAge < time.Minute {
		return fmt.Errorf("SESSION_MAX_AGE must be at least 1m, got %s", c.Security.SessionMaxAge)
	}
	if c.Security.CSRFTokenTTL < time.Minute {
		return fmt.Errorf("CSRF_TOKEN_TTL must be at least 1m, got %s", c.Security.CSRFTokenTTL)
	}
	return nil
}

// validateContent validates content storage settings
func (c *Config) validateContent() error {
	switch c.Content.Store {
	case "memory":
		return nil
	case "badger":
		if c.Content.Path == "" {
			return fmt.Errorf("CONTENT_STORE_PATH is required when CONTENT_STORE=badger")
		}
		return nil
	default:
		return fmt.Errorf("CONTENT_STORE must be 'badger' or 'memory', got %q", c.Content.Store)
	}
}

// validateAudit validates audit log settings
func (c *Config) validateAudit() error {
	if c.Audit.Capacity < 1 {
		return fmt.Errorf("AUDIT_CAPACITY must be at least 1, got %d", c.Audit.Capacity)
	}
	return nil
}

// validateLogging validates logging settings
func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be 'json' or 'console', got %q", c.Logging.Format)
	}
}
