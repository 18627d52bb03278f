package util

import "strings"

// TrimToNull trims the value and returns nil when nothing remains.
// Used for optional free-text fields that should store NULL instead of "".
func TrimToNull(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ConditionalString returns valueIfTrue if condition is true, otherwise valueIfFalse
func ConditionalString(condition bool, valueIfTrue, valueIfFalse string) string {
	if condition {
		return valueIfTrue
	}
	return valueIfFalse
}
