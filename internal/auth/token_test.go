// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret-key-that-is-long-enough", 12*time.Hour)

	token := codec.Issue("192.168.1.10")
	if token == "" {
		t.Fatal("Issue returned empty token")
	}

	result := codec.Verify(token, "192.168.1.10")
	if !result.Valid {
		t.Fatal("Expected token to verify")
	}
	if result.Expired {
		t.Error("Fresh token reported expired")
	}
	if result.WeakBinding {
		t.Error("Matching IP reported weak binding")
	}
	if result.ExpiresAt.Sub(result.IssuedAt) != 12*time.Hour {
		t.Errorf("Expected 12h lifetime, got %v", result.ExpiresAt.Sub(result.IssuedAt))
	}
}

func TestTokenIPMismatchWeakBinding(t *testing.T) {
	codec := NewTokenCodec("test-secret-key-that-is-long-enough", 12*time.Hour)

	token := codec.Issue("192.168.1.10")
	result := codec.Verify(token, "10.0.0.99")

	if !result.Valid {
		t.Fatal("IP mismatch should not invalidate the token")
	}
	if !result.WeakBinding {
		t.Error("Expected WeakBinding for mismatched IP")
	}
}

func TestTokenExpiry(t *testing.T) {
	codec := NewTokenCodec("test-secret-key-that-is-long-enough", 12*time.Hour)

	issued := time.Now()
	codec.now = func() time.Time { return issued }
	token := codec.IssueWithMaxAge("192.168.1.10", time.Minute)

	codec.now = func() time.Time { return issued.Add(2 * time.Minute) }
	result := codec.Verify(token, "192.168.1.10")

	if result.Valid {
		t.Error("Expired token reported valid")
	}
	if !result.Expired {
		t.Error("Expected Expired for token past its lifetime")
	}
}

func TestTokenTamperedSignature(t *testing.T) {
	codec := NewTokenCodec("test-secret-key-that-is-long-enough", 12*time.Hour)

	token := codec.Issue("192.168.1.10")
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("Decoding issued token: %v", err)
	}

	// Flip the final signature character.
	raw := []byte(decoded)
	last := len(raw) - 1
	if raw[last] == 'A' {
		raw[last] = 'B'
	} else {
		raw[last] = 'A'
	}
	tampered := base64.RawURLEncoding.EncodeToString(raw)

	if result := codec.Verify(tampered, "192.168.1.10"); result.Valid || result.Expired {
		t.Error("Tampered signature should fail closed")
	}
}

func TestTokenTamperedPayload(t *testing.T) {
	codec := NewTokenCodec("test-secret-key-that-is-long-enough", 12*time.Hour)

	token := codec.Issue("192.168.1.10")
	decoded, _ := base64.RawURLEncoding.DecodeString(token)
	fields := strings.Split(string(decoded), ".")
	if len(fields) != 5 {
		t.Fatalf("Expected 5 token fields, got %d", len(fields))
	}

	// Push expiry out by a day without re-signing.
	fields[1] = "9999999999999"
	forged := base64.RawURLEncoding.EncodeToString([]byte(strings.Join(fields, ".")))

	if result := codec.Verify(forged, "192.168.1.10"); result.Valid {
		t.Error("Forged expiry should fail signature verification")
	}
}

func TestTokenDifferentSecret(t *testing.T) {
	issuer := NewTokenCodec("issuer-secret-key-that-is-long-enough", 12*time.Hour)
	verifier := NewTokenCodec("another-secret-key-that-is-long-enough", 12*time.Hour)

	token := issuer.Issue("192.168.1.10")
	if result := verifier.Verify(token, "192.168.1.10"); result.Valid {
		t.Error("Token signed with a different secret should not verify")
	}
}

func TestTokenMalformedInput(t *testing.T) {
	codec := NewTokenCodec("test-secret-key-that-is-long-enough", 12*time.Hour)

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "!!!not-base64!!!"},
		{"too few fields", base64.RawURLEncoding.EncodeToString([]byte("a.b.c"))},
		{"too many fields", base64.RawURLEncoding.EncodeToString([]byte("a.b.c.d.e.f"))},
		{"garbage fields", base64.RawURLEncoding.EncodeToString([]byte("x.y.z.w.v"))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := codec.Verify(tc.token, "192.168.1.10")
			if result.Valid {
				t.Error("Malformed token reported valid")
			}
			if result.Expired || result.WeakBinding {
				t.Error("Malformed token should carry no partial verdicts")
			}
		})
	}
}

func TestTokenNonceUniqueness(t *testing.T) {
	codec := NewTokenCodec("test-secret-key-that-is-long-enough", 12*time.Hour)
	fixed := time.Now()
	codec.now = func() time.Time { return fixed }

	if codec.Issue("192.168.1.10") == codec.Issue("192.168.1.10") {
		t.Error("Tokens issued at the same instant should differ by nonce")
	}
}

func TestTokenIPv4DotsSurviveSplit(t *testing.T) {
	codec := NewTokenCodec("test-secret-key-that-is-long-enough", 12*time.Hour)

	// Dotted-quad addresses must not break the field layout.
	token := codec.Issue("203.0.113.254")
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("Decoding issued token: %v", err)
	}
	if fields := strings.Split(string(decoded), "."); len(fields) != 5 {
		t.Fatalf("Expected 5 fields with dotted-quad binding IP, got %d", len(fields))
	}
	if result := codec.Verify(token, "203.0.113.254"); !result.Valid || result.WeakBinding {
		t.Error("Dotted-quad binding IP should round-trip cleanly")
	}
}
