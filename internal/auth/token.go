// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

// Package auth provides the admin authentication layer: stateless
// HMAC-signed session tokens, one-time CSRF tokens, password
// verification, and the middleware gating protected endpoints.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenCodec issues and verifies stateless session tokens.
//
// A token encodes "iat.exp.ip.nonce.sig" where sig is HMAC-SHA256 over
// the first four fields, keyed by the server secret. The binding IP is
// base64url-encoded inside the payload so the token always splits into
// exactly five dot-separated fields. Tokens are self-contained: there
// is no server-side session table and no revocation before expiry.
type TokenCodec struct {
	secret []byte
	maxAge time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

// VerifyResult is the outcome of verifying a session token.
type VerifyResult struct {
	// Valid reports whether the token's signature checks out and it has
	// not expired. Any decode or shape error yields Valid false.
	Valid bool

	// Expired is set when the signature was valid but the token's
	// lifetime has passed.
	Expired bool

	// WeakBinding is set when the token is valid but was issued for a
	// different IP than the requesting one. The token still passes;
	// callers log and audit the reduced assurance.
	WeakBinding bool

	// IssuedAt and ExpiresAt are populated when the signature verifies.
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// NewTokenCodec creates a codec signing with secret. Tokens issued
// without an explicit lifetime use maxAge.
func NewTokenCodec(secret string, maxAge time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Issue creates a signed session token bound to bindingIP with the
// codec's default lifetime.
func (c *TokenCodec) Issue(bindingIP string) string {
	return c.IssueWithMaxAge(bindingIP, c.maxAge)
}

// IssueWithMaxAge creates a signed session token with an explicit
// lifetime.
func (c *TokenCodec) IssueWithMaxAge(bindingIP string, maxAge time.Duration) string {
	iat := c.now().UnixMilli()
	exp := iat + maxAge.Milliseconds()
	nonce := uuid.NewString()

	payload := fmt.Sprintf("%d.%d.%s.%s", iat, exp, encodeIP(bindingIP), nonce)
	sig := c.sign(payload)

	return base64.RawURLEncoding.EncodeToString([]byte(payload + "." + sig))
}

// Verify checks a token against the codec secret and the requesting IP.
// It fails closed: malformed input of any kind yields Valid false. The
// expiry check runs only after the signature verifies, and an IP
// mismatch downgrades to WeakBinding rather than invalidating the
// token (proxies and NAT legitimately shift client addresses).
func (c *TokenCodec) Verify(token, requestIP string) VerifyResult {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return VerifyResult{}
	}

	fields := strings.Split(string(raw), ".")
	if len(fields) != 5 {
		return VerifyResult{}
	}

	payload := strings.Join(fields[:4], ".")
	expected := c.sign(payload)

	// Constant-time comparison: a byte-wise == would leak how many
	// leading signature bytes matched.
	if !hmac.Equal([]byte(fields[4]), []byte(expected)) {
		return VerifyResult{}
	}

	iat, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return VerifyResult{}
	}
	exp, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return VerifyResult{}
	}
	bindingIP, err := decodeIP(fields[2])
	if err != nil {
		return VerifyResult{}
	}

	issuedAt := time.UnixMilli(iat)
	expiresAt := time.UnixMilli(exp)

	if c.now().After(expiresAt) {
		return VerifyResult{Expired: true, IssuedAt: issuedAt, ExpiresAt: expiresAt}
	}

	result := VerifyResult{
		Valid:     true,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
	if bindingIP != requestIP {
		result.WeakBinding = true
	}
	return result
}

// sign computes the base64url HMAC-SHA256 signature of payload.
func (c *TokenCodec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func encodeIP(ip string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(ip))
}

func decodeIP(encoded string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
