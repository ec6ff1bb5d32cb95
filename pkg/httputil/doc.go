// Package httputil provides resilience helpers for upstream API clients.
//
// # Overview
//
// Two independent combinators bound the latency of an unreliable dependency:
//
//   - [WithTimeout]: races an operation against a deadline
//   - [Retry]: retries a failing operation with exponential backoff
//
// [Do] composes them so each attempt gets its own deadline:
//
//	set, err := httputil.Do(ctx, httputil.DefaultPolicy(), 30*time.Second,
//	    func(ctx context.Context) (*tcgdex.Set, error) {
//	        return client.GetGroup(ctx, "A1")
//	    })
//
// # Timeouts
//
// When the deadline fires first, [WithTimeout] returns a [*TimeoutError]
// right away and discards whatever the operation produces later. The
// operation's context is cancelled, so well-behaved HTTP calls stop too,
// but nothing waits for that to happen.
//
// # Retry
//
// [Retry] invokes the operation, and after the n-th failure waits
// Initial * 2^(n-1) before trying again. With the default policy
// (3 attempts, 2s) the waits are 2s then 4s. The last error is returned
// unchanged once attempts are exhausted. Errors wrapped with [Permanent]
// (such as a 404) are returned immediately. [TransientError] marks
// connection failures and 5xx/429 responses.
//
// # Configuration
//
// Default settings match the catalog fetch policy:
//
//   - Per-call timeout: 30 seconds (set by callers)
//   - Attempts: 3
//   - Initial backoff: 2 seconds
//   - Jitter: none
package httputil
