// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package auth

import (
	"strings"
	"testing"
)

func TestPasswordVerifierPlaintext(t *testing.T) {
	v := NewPasswordVerifier("correct horse battery staple", "")

	if !v.Configured() {
		t.Fatal("Plaintext password should report configured")
	}
	if !v.Verify("correct horse battery staple") {
		t.Error("Matching password rejected")
	}
	if v.Verify("wrong") {
		t.Error("Wrong password accepted")
	}
	if v.Verify("") {
		t.Error("Empty password accepted")
	}
}

func TestPasswordVerifierBcrypt(t *testing.T) {
	hash, err := HashPassword("hunter2-but-longer")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") && !strings.HasPrefix(hash, "$2b$") {
		t.Fatalf("Unexpected hash format: %s", hash[:4])
	}

	v := NewPasswordVerifier("", hash)
	if !v.Configured() {
		t.Fatal("Hash should report configured")
	}
	if !v.Verify("hunter2-but-longer") {
		t.Error("Matching password rejected against hash")
	}
	if v.Verify("hunter2") {
		t.Error("Wrong password accepted against hash")
	}
}

func TestPasswordVerifierHashWinsOverPlaintext(t *testing.T) {
	hash, err := HashPassword("from-the-hash")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	v := NewPasswordVerifier("from-plaintext", hash)
	if !v.Verify("from-the-hash") {
		t.Error("Hash should take precedence when both are set")
	}
	if v.Verify("from-plaintext") {
		t.Error("Plaintext should be ignored when a hash is configured")
	}
}

func TestPasswordVerifierUnconfigured(t *testing.T) {
	v := NewPasswordVerifier("", "")

	if v.Configured() {
		t.Error("Empty credentials should report unconfigured")
	}
	if v.Verify("anything") {
		t.Error("Unconfigured verifier must reject every candidate")
	}
	if v.Verify("") {
		t.Error("Unconfigured verifier must reject the empty candidate too")
	}
}
