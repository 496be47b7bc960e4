// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package validation

import (
	"strings"
	"testing"
)

type auditQueryRequest struct {
	Action string `validate:"omitempty,max=200"`
	IP     string `validate:"omitempty,ip"`
	Limit  int    `validate:"min=1,max=500"`
	Offset int    `validate:"min=0"`
}

func TestValidateStructValid(t *testing.T) {
	t.Parallel()

	req := auditQueryRequest{
		Action: "login",
		IP:     "192.168.1.10",
		Limit:  50,
		Offset: 0,
	}

	if err := ValidateStruct(&req); err != nil {
		t.Errorf("expected valid struct, got: %v", err)
	}
}

func TestValidateStructSingleError(t *testing.T) {
	t.Parallel()

	req := auditQueryRequest{Limit: 501}

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation error for limit over max")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR code, got %q", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "Limit") {
		t.Errorf("expected message naming the field, got %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "Limit" {
		t.Errorf("expected field detail 'Limit', got %v", apiErr.Details["field"])
	}
}

func TestValidateStructMultipleErrors(t *testing.T) {
	t.Parallel()

	req := auditQueryRequest{
		IP:     "not-an-ip",
		Limit:  0,
		Offset: -1,
	}

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if len(err.Errors()) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(err.Errors()), err)
	}

	apiErr := err.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("expected fields detail list, got %T", apiErr.Details["fields"])
	}
	if len(fields) != 3 {
		t.Errorf("expected 3 field details, got %d", len(fields))
	}
}

func TestTranslateErrorMessages(t *testing.T) {
	t.Parallel()

	type bounds struct {
		Name  string `validate:"min=2"`
		Count int    `validate:"max=10"`
	}

	err := ValidateStruct(&bounds{Name: "a", Count: 11})
	if err == nil {
		t.Fatal("expected validation errors")
	}

	msg := err.Error()
	if !strings.Contains(msg, "at least 2 characters") {
		t.Errorf("expected string min message, got %q", msg)
	}
	if !strings.Contains(msg, "at most 10") {
		t.Errorf("expected numeric max message, got %q", msg)
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("expected the same validator instance on repeated calls")
	}
}
