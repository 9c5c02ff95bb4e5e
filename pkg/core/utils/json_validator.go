// Package utils holds small helpers for taming LLM output.
package utils

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// ValidateJSON ensures that a json string matches the provided Go struct
// schema. Fields tagged omitempty are optional; everything else must be
// non-zero, which catches a model silently dropping a required field.
func ValidateJSON(jsonData string, schema interface{}) error {
	if err := json.Unmarshal([]byte(jsonData), schema); err != nil {
		return fmt.Errorf("JSON_STRUCTURAL_ERROR: %v", err)
	}

	v := reflect.ValueOf(schema)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		structField := v.Type().Field(i)
		tag := structField.Tag.Get("json")
		if strings.Contains(tag, "omitempty") {
			continue
		}
		if field.IsZero() {
			return fmt.Errorf("JSON_SCHEMA_VIOLATION: required field '%s' is missing or zero", structField.Name)
		}
	}
	return nil
}

// RepairJSON attempts to fix common JSON errors from LLM outputs: missing
// key quotes, single quotes, unclosed brackets, trailing commas, comments,
// and surrounding markdown code fences.
func RepairJSON(malformedJSON string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformedJSON)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// ParseHJSONToStruct parses Human-friendly JSON (comments, unquoted keys,
// optional commas) directly into a Go struct. Used as the last-resort parse
// when strict JSON and repair both fail.
func ParseHJSONToStruct(hjsonData string, schema interface{}) error {
	if err := hjson.Unmarshal([]byte(hjsonData), schema); err != nil {
		return fmt.Errorf("HJSON_UNMARSHAL_ERROR: %v", err)
	}
	return nil
}

// ValidateAndRepairJSON combines repair and validation into a single
// draft-validate-fix pass. Returns the repaired JSON string on success.
func ValidateAndRepairJSON(rawJSON string, schema interface{}) (string, error) {
	repaired, err := RepairJSON(rawJSON)
	if err != nil {
		repaired = rawJSON
	}
	if err := ValidateJSON(repaired, schema); err == nil {
		return repaired, nil
	}
	// Strict parse failed; try the lenient Hjson reading of the raw text.
	if err := ParseHJSONToStruct(rawJSON, schema); err != nil {
		return "", fmt.Errorf("could not coerce model output into schema: %w", err)
	}
	normalized, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("JSON_MARSHAL_ERROR: %v", err)
	}
	return string(normalized), nil
}
