package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "deck size",
			err:  New(ErrCodeInvalidDeck, "deck has %d cards, want %d", 18, 20),
			want: "INVALID_DECK: deck has 18 cards, want 20",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeNetwork, errors.New("connection reset"), "fetch set %s", "A1"),
			want: "NETWORK_ERROR: fetch set A1: connection reset",
		},
		{
			name: "literal percent in argument",
			err:  New(ErrCodeInvalidCardID, "invalid card id: %q", "A1-%01"),
			want: `INVALID_CARD_ID: invalid card id: "A1-%01"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrap_KeepsCauseReachable(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("list groups: %w", Wrap(ErrCodeCatalogUnavailable, cause, "card catalog is unavailable"))

	if !errors.Is(err, cause) {
		t.Error("cause should be reachable through errors.Is")
	}
	var e *Error
	if !errors.As(err, &e) || e.Cause != cause {
		t.Fatalf("errors.As() = %+v", e)
	}
	if e.Message != "card catalog is unavailable" {
		t.Errorf("Message = %q", e.Message)
	}
}

func TestIs_OutermostCodeWins(t *testing.T) {
	inner := New(ErrCodeCardNotFound, "card not found")
	outer := Wrap(ErrCodeInvalidCardID, inner, "unknown card A1-999")

	if !Is(outer, ErrCodeInvalidCardID) {
		t.Error("outer code should match")
	}
	if Is(outer, ErrCodeCardNotFound) {
		t.Error("Is only reports the outermost coded error")
	}
	if Is(errors.New("plain"), ErrCodeInvalidDeck) {
		t.Error("plain errors carry no code")
	}
}

// quotaError carries a code without being an *Error.
type quotaError struct{}

func (quotaError) Error() string { return "quota exhausted" }
func (quotaError) Code() Code    { return ErrCodeRateLimited }

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"deck not found", New(ErrCodeDeckNotFound, "deck not found"), ErrCodeDeckNotFound},
		{"wrapped by fmt", fmt.Errorf("load: %w", New(ErrCodeCatalogUnavailable, "no catalog")), ErrCodeCatalogUnavailable},
		{"coder", quotaError{}, ErrCodeRateLimited},
		{"wrapped coder", fmt.Errorf("get card: %w", quotaError{}), ErrCodeRateLimited},
		{"error wins over coder", Wrap(ErrCodeNetwork, quotaError{}, "tcgdex"), ErrCodeNetwork},
		{"rate limited", &RateLimitedError{RetryAfter: 5}, ErrCodeRateLimited},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", Wrap(ErrCodeInvalidDeck, errors.New("internal detail"), "deck needs a name"), "deck needs a name"},
		{"wrapped coded", fmt.Errorf("create: %w", New(ErrCodeForbidden, "insufficient permissions")), "insufficient permissions"},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimitedError(t *testing.T) {
	if got := (&RateLimitedError{RetryAfter: 60}).Error(); got != "rate limited: retry after 60 seconds" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&RateLimitedError{}).Error(); got != "rate limited" {
		t.Errorf("Error() = %q", got)
	}
}
