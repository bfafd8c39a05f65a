package formview

import (
	"strconv"
	"strings"
)

// NonEmpty fails on values that are empty after trimming.
func NonEmpty(msg string) Rule {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return msg
		}
		return ""
	}
}

// PositiveNumber fails unless the value parses as a number greater than
// zero.
func PositiveNumber(msg string) Rule {
	return func(value string) string {
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || n <= 0 {
			return msg
		}
		return ""
	}
}

// OneOf fails unless the value is one of the allowed options.
func OneOf(allowed []string, msg string) Rule {
	return func(value string) string {
		for _, option := range allowed {
			if value == option {
				return ""
			}
		}
		return msg
	}
}
