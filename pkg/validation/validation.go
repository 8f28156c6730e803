package validation

import (
	"strings"
	"unicode/utf8"
)

// MaxQueryLength bounds city and search queries forwarded to the weather API
const MaxQueryLength = 100

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

// IsValidUnit reports whether s names a temperature unit
func IsValidUnit(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "f", "celsius", "fahrenheit":
		return true
	default:
		return false
	}
}

// HasMinLength reports whether the trimmed string has at least min runes
func HasMinLength(s string, min int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= min
}

// IsValidQuery checks a city or search query: non-empty, bounded and free of control characters
func IsValidQuery(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > MaxQueryLength {
		return false
	}
	for _, r := range trimmed {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
