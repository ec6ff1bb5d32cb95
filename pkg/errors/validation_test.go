package errors

import (
	"strings"
	"testing"
)

func TestValidateCardID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"set card", "A1-001", false},
		{"subset card", "A2a-045", false},
		{"promo card", "P-A-007", false},
		{"bare number", "001", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"double hyphen", "A1--001", true},
		{"trailing hyphen", "A1-", true},
		{"path traversal", "../A1-001", true},
		{"whitespace", "A1 001", true},
		{"slash", "A1/001", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCardID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCardID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCardID) {
				t.Errorf("ValidateCardID(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateDeckName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Mewtwo ex", false},
		{"unicode", "ピカチュウ デッキ", false},
		{"max length", strings.Repeat("x", 80), false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("x", 81), true},
		{"control char", "deck\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDeckName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDeckName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"api root", "https://api.tcgdex.net/v2", false},
		{"local stub", "http://127.0.0.1:8081", false},

		{"empty", "", true},
		{"ftp", "ftp://api.tcgdex.net", true},
		{"file", "file:///etc/passwd", true},
		{"no scheme", "api.tcgdex.net/v2", true},
		{"no host", "https:///v2", true},
		{"bad escape", "https://api.tcgdex.net/%zz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidInput {
				t.Errorf("ValidateURL(%q) code = %s", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateAddr(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"all interfaces", ":8080", false},
		{"redis", "localhost:6379", false},
		{"ipv6", "[::1]:6379", false},

		{"empty", "", true},
		{"no port", "localhost", true},
		{"port zero", "localhost:0", true},
		{"port too large", "localhost:70000", true},
		{"named port", "localhost:redis", true},
		{"url", "redis://localhost:6379", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddr(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAddr(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidCardID,
		ErrCodeInvalidDeck,
		ErrCodeNotFound,
		ErrCodeCardNotFound,
		ErrCodeDeckNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeRateLimited,
		ErrCodeCatalogUnavailable,
		ErrCodeUnauthorized,
		ErrCodeForbidden,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
