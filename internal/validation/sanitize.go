// Folio - Personal Portfolio Website and Admin CMS
// Copyright 2026 M. Fallows (mfallows)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfallows/folio

package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldType is the expected type of an untrusted content field.
type FieldType string

// Supported schema field types.
const (
	TypeString  FieldType = "string"
	TypeArray   FieldType = "array"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
)

// MaxStringLength is the maximum accepted length for a string field.
// Longer values are rejected rather than truncated.
const MaxStringLength = 5000

// Schema maps field names to their expected types. Fields present in the
// input but absent from the schema are dropped from the sanitized output.
type Schema map[string]FieldType

// SanitizeResult is the outcome of sanitizing one document. When Valid is
// false, Errors lists every failing field and Data must not be stored.
type SanitizeResult struct {
	Valid  bool
	Errors []string
	Data   map[string]interface{}
}

// htmlEscaper rewrites characters with meaning in HTML to entity
// equivalents. Ampersand must be listed first in any sequential escape;
// strings.Replacer applies all rules in a single pass so ordering is safe.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// Sanitize validates and sanitizes an untrusted document against a schema.
//
// Per-type behavior:
//   - string: reject non-strings and strings over MaxStringLength, then
//     HTML-escape and trim surrounding whitespace
//   - array: type check only, elements pass through unvalidated
//   - number: coerce via numeric parse, reject NaN and infinities
//   - boolean: strict type check, no coercion
//
// Errors are aggregated across all fields; callers reject the whole
// request when any field fails.
func Sanitize(data map[string]interface{}, schema Schema) SanitizeResult {
	result := SanitizeResult{
		Valid: true,
		Data:  make(map[string]interface{}, len(schema)),
	}

	for field, fieldType := range schema {
		raw, ok := data[field]
		if !ok {
			continue
		}

		value, err := sanitizeField(raw, fieldType)
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", field, err))
			continue
		}
		result.Data[field] = value
	}

	return result
}

// sanitizeField applies the rule for a single field value.
func sanitizeField(raw interface{}, fieldType FieldType) (interface{}, error) {
	switch fieldType {
	case TypeString:
		return sanitizeString(raw)
	case TypeArray:
		return sanitizeArray(raw)
	case TypeNumber:
		return sanitizeNumber(raw)
	case TypeBoolean:
		return sanitizeBoolean(raw)
	default:
		return nil, fmt.Errorf("unknown schema type %q", fieldType)
	}
}

func sanitizeString(raw interface{}) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("must be a string")
	}
	if len(s) > MaxStringLength {
		return nil, fmt.Errorf("must be at most %d characters", MaxStringLength)
	}
	return strings.TrimSpace(htmlEscaper.Replace(s)), nil
}

func sanitizeArray(raw interface{}) (interface{}, error) {
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("must be an array")
	}
	// Elements pass through unvalidated.
	return arr, nil
}

func sanitizeNumber(raw interface{}) (interface{}, error) {
	var n float64

	switch v := raw.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("must be a number")
		}
		n = parsed
	default:
		return nil, fmt.Errorf("must be a number")
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("must be a finite number")
	}
	return n, nil
}

func sanitizeBoolean(raw interface{}) (interface{}, error) {
	b, ok := raw.(bool)
	if !ok {
		return nil, fmt.Errorf("must be a boolean")
	}
	return b, nil
}
