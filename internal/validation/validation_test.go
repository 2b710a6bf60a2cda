package validation

import (
	"testing"
	"time"
)

func TestIsValidCatalogCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want bool
	}{
		{"valid 13 digits", "1234567890123", true},
		{"empty", "", false},
		{"too short", "12345", false},
		{"too long", "12345678901234", false},
		{"contains letter", "123456789012X", false},
		{"contains space", "123456789 123", false},
		{"contains dash", "123-456789012", false},
		{"all zeros", "0000000000000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidCatalogCode(tt.code); got != tt.want {
				t.Errorf("IsValidCatalogCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"valid", "reader@example.com", true},
		{"empty", "", false},
		{"missing at", "reader.example.com", false},
		{"missing dot after at", "reader@example", false},
		{"dot only before at", "reader.name@example", false},
		{"multiple ats uses first", "a@b@c.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidEmail(tt.value); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestIsPastOrPresent(t *testing.T) {
	t.Parallel()

	if !IsPastOrPresent(time.Now().Add(-time.Hour)) {
		t.Error("expected a past date to be accepted")
	}

	if IsPastOrPresent(time.Now().Add(time.Hour)) {
		t.Error("expected a future date to be rejected")
	}

	if IsPastOrPresent(time.Time{}) {
		t.Error("expected the zero date to be rejected")
	}
}

func TestIsPositiveQuantity(t *testing.T) {
	t.Parallel()

	if !IsPositiveQuantity(1) {
		t.Error("expected 1 to be positive")
	}

	if IsPositiveQuantity(0) {
		t.Error("expected 0 to be rejected")
	}

	if IsPositiveQuantity(-5) {
		t.Error("expected -5 to be rejected")
	}
}
