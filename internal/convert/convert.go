// Package convert provides type conversion utilities for backend field values.
// This package has no dependencies on other internal packages to avoid circular imports.
package convert

import (
	"fmt"
	"strconv"
	"strings"
)

// ToString converts scalar backend values to string with a fallback value.
// Floats carrying integral values render without a decimal part, which
// matters for identifiers some backend revisions return as numbers.
func ToString(v interface{}, fallback string) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return ToString(float64(val), fallback)
	case fmt.Stringer:
		return val.String()
	}
	return fallback
}

// ToFloat converts various types to float64 with a fallback value.
func ToFloat(v interface{}, fallback float64) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f
		}
	}
	return fallback
}

// ToInt converts various types to int with a fallback value.
func ToInt(v interface{}, fallback int) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case float32:
		return int(val)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
	}
	return fallback
}

// ToBool converts backend truthiness to bool with a fallback value.
// Strings accept the usual spellings plus the availability vocabulary
// some backend revisions use instead of a boolean field.
func ToBool(v interface{}, fallback bool) bool {
	switch val := v.(type) {
	case bool:
		return val
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "yes", "1", "available", "active":
			return true
		case "false", "no", "0", "unavailable", "inactive":
			return false
		}
	}
	return fallback
}
