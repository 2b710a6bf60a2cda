// Package validation provides field-level predicates shared by the
// domain entities and the service layer. Each predicate reports whether
// a single value is acceptable; callers decide which error to raise.
package validation

import (
	"strings"
	"time"
)

// CatalogCodeLength is the exact number of digits a catalog code carries.
const CatalogCodeLength = 13

// IsValidCatalogCode reports whether code is exactly 13 ASCII digits.
func IsValidCatalogCode(code string) bool {
	if len(code) != CatalogCodeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsValidEmail reports whether value contains an '@' with at least one
// '.' somewhere after the first '@'.
func IsValidEmail(value string) bool {
	at := strings.Index(value, "@")
	if at < 0 {
		return false
	}
	return strings.Contains(value[at+1:], ".")
}

// IsPastOrPresent reports whether t is a real instant that does not lie
// in the future. The zero time is rejected.
func IsPastOrPresent(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.After(time.Now())
}

// IsPositiveQuantity reports whether n is strictly greater than zero.
func IsPositiveQuantity(n int) bool {
	return n > 0
}
