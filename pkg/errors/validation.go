package errors

import (
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxDeckNameLength bounds user-supplied deck names.
const maxDeckNameLength = 80

// cardIDRegex matches card identifiers as issued by the card database
// (e.g., "A1-001", "A2a-045", "P-A-007").
var cardIDRegex = regexp.MustCompile(`^[A-Za-z0-9]+(-[A-Za-z0-9]+)*$`)

// ValidateCardID validates a card identifier before it is used in a lookup
// or stored in a deck.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - Maximum length of 64 characters
//   - Alphanumeric segments separated by single hyphens
func ValidateCardID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidCardID, "card id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidCardID, "card id too long (max 64 characters)")
	}
	if !cardIDRegex.MatchString(id) {
		return New(ErrCodeInvalidCardID, "invalid card id: %q", id)
	}
	return nil
}

// ValidateDeckName validates a user-supplied deck name.
// Names are trimmed by the caller; this only checks what is left.
func ValidateDeckName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidDeck, "deck name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxDeckNameLength {
		return New(ErrCodeInvalidDeck, "deck name too long (max %d characters)", maxDeckNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDeck, "deck name contains invalid control characters")
		}
	}
	return nil
}

// ValidateURL checks that rawURL is an absolute http or https URL with a
// host, such as the card database base URL.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme: %q", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL has no host: %q", rawURL)
	}
	return nil
}

// ValidateAddr checks a "host:port" network address. The host may be empty
// (":8080" listens on every interface); the port must be 1-65535.
func ValidateAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidInput, "address cannot be empty")
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid address %q", addr)
	}
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return New(ErrCodeInvalidInput, "invalid port in address %q", addr)
	}
	return nil
}
