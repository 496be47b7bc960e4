// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier checks the admin password. A bcrypt hash is
// preferred; a configured plaintext password is compared in constant
// time as a fallback for small deployments. With neither configured,
// every verification fails (fail closed, no fallback login path).
type PasswordVerifier struct {
	plaintext []byte
	hash      []byte
}

// NewPasswordVerifier creates a verifier from the configured plaintext
// password and/or bcrypt hash. The hash wins when both are set.
func NewPasswordVerifier(password, passwordHash string) *PasswordVerifier {
	v := &PasswordVerifier{}
	if passwordHash != "" {
		v.hash = []byte(passwordHash)
	} else if password != "" {
		v.plaintext = []byte(password)
	}
	return v
}

// Configured reports whether any admin credential is set. Callers
// surface an unconfigured verifier as a server error, not a login
// failure.
func (v *PasswordVerifier) Configured() bool {
	return len(v.hash) > 0 || len(v.plaintext) > 0
}

// Verify checks a candidate password. Both comparison paths are
// timing-safe: bcrypt internally, plaintext via subtle.ConstantTimeCompare.
func (v *PasswordVerifier) Verify(candidate string) bool {
	if len(v.hash) > 0 {
		return bcrypt.CompareHashAndPassword(v.hash, []byte(candidate)) == nil
	}
	if len(v.plaintext) > 0 {
		return subtle.ConstantTimeCompare(v.plaintext, []byte(candidate)) == 1
	}
	return false
}

// HashPassword produces a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
// Cost 12 balances verification latency against brute-force resistance.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
