// Package integrations provides HTTP clients for upstream card data APIs.
//
// # Overview
//
// Each upstream has its own subpackage:
//
//   - [tcgdex]: the TCGdex card database (Pokémon TCG Pocket series)
//
// # Client Pattern
//
// Upstream clients embed the shared [Client] and expose typed methods:
//
//	client := tcgdex.NewClient(backend, tcgdex.Options{Language: "en"})
//	set, err := client.GetGroup(ctx, "A1")
//	card, err := client.GetItem(ctx, "A1-001", false)  // false = use cache
//
// # Shared Infrastructure
//
// The [Client] type provides:
//   - status mapping onto [httputil.Permanent] / [httputil.Transient] so
//     callers know what is worth retrying
//   - optional response caching via [cache.Cache]
//   - HTTP events through [observability.HTTP]
//
// [Throttle] wraps an *http.Client with a token-bucket limiter so bursts of
// per-card requests stay under upstream rate limits.
//
// [tcgdex]: github.com/mikecinchan/tcg-deck-editor/pkg/integrations/tcgdex
// [cache.Cache]: github.com/mikecinchan/tcg-deck-editor/pkg/cache.Cache
// [httputil.Permanent]: github.com/mikecinchan/tcg-deck-editor/pkg/httputil.Permanent
// [httputil.Transient]: github.com/mikecinchan/tcg-deck-editor/pkg/httputil.Transient
// [observability.HTTP]: github.com/mikecinchan/tcg-deck-editor/pkg/observability.HTTP
package integrations
