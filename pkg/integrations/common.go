package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a resource doesn't exist upstream.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for upstream requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// Throttle returns a copy of h whose requests wait on limiter before they
// are sent. A nil limiter returns h unchanged.
func Throttle(h *http.Client, limiter *rate.Limiter) *http.Client {
	if limiter == nil {
		return h
	}
	next := h.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	out := *h
	out.Transport = throttledTransport{limiter: limiter, next: next}
	return &out
}

// NewLimiter builds a token bucket allowing rps requests per second with the
// given burst. A non-positive rps disables limiting and returns nil.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), max(burst, 1))
}

type throttledTransport struct {
	limiter *rate.Limiter
	next    http.RoundTripper
}

func (t throttledTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(r.Context()); err != nil {
		return nil, err
	}
	return t.next.RoundTrip(r)
}

// URLEncode percent-encodes a path segment.
// This is a convenience wrapper around [url.PathEscape].
func URLEncode(s string) string { return url.PathEscape(s) }
