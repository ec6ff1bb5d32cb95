// Package pkg provides the libraries behind the TCG Pocket deck editor.
//
// # Overview
//
// The deck editor needs the full Pokémon TCG Pocket card catalog, which it
// reads from the public TCGdex API, keeps as one normalized in-memory
// snapshot, and serves to clients together with their saved decks. The pkg
// directory is organized into four areas:
//
//  1. [catalog] - Domain logic (fetch, normalize, cache and query cards)
//  2. [decks] - Saved decks, their validation and storage
//  3. [integrations] - External API clients ([integrations/tcgdex])
//  4. Infrastructure - [cache], [httputil], [observability], [errors], [auth]
//
// # Architecture
//
// The typical data flow for a catalog read:
//
//	catalog.Service.All
//	         ↓
//	    catalog.Store (fresh snapshot? return it)
//	         ↓ stale or empty
//	    catalog.Fetcher (list sets → fetch each set → enrich cards in batches)
//	         ↓            every call: httputil.Do = retry(timeout(call))
//	    tcgdex.Client (HTTP + response cache)
//	         ↓
//	    catalog.Normalize (raw card → Item)
//	         ↓
//	    catalog.Store (atomic swap, seed written)
//
// A failed refresh never replaces a good snapshot: the previous one is
// served and the failure is reported through [observability] hooks. Only a
// cold start without any snapshot fails with [catalog.ErrUnavailable].
//
// # Quick Start
//
//	client := tcgdex.NewClient(cache.NewNullCache(), tcgdex.Options{})
//	svc := catalog.New(client, catalog.FetchOptions{}, catalog.StoreOptions{})
//
//	items, err := svc.All(ctx)
//	card, err := svc.ByID(ctx, "A1-001")
//
// # Main Packages
//
// [catalog] - Source interface, fetcher, normalizer, snapshot store with
// single-flight refresh and stale fallback, optional seed persistence.
//
// [decks] - Deck model with the fixed 20-card rule, a service that checks
// card ids against the catalog, and memory and MongoDB stores.
//
// [cache] - Byte caches with TTL: file, Redis and null backends.
//
// [httputil] - Per-call timeouts and exponential-backoff retry with a
// transient/permanent error taxonomy.
//
// [auth] - Bearer token verification (HS256 JWT).
//
// [catalog]: https://pkg.go.dev/github.com/mikecinchan/tcg-deck-editor/pkg/catalog
// [decks]: https://pkg.go.dev/github.com/mikecinchan/tcg-deck-editor/pkg/decks
// [integrations]: https://pkg.go.dev/github.com/mikecinchan/tcg-deck-editor/pkg/integrations
// [integrations/tcgdex]: https://pkg.go.dev/github.com/mikecinchan/tcg-deck-editor/pkg/integrations/tcgdex
// [cache]: https://pkg.go.dev/github.com/mikecinchan/tcg-deck-editor/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/mikecinchan/tcg-deck-editor/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/mikecinchan/tcg-deck-editor/pkg/observability
// [errors]: https://pkg.go.dev/github.com/mikecinchan/tcg-deck-editor/pkg/errors
// [auth]: https://pkg.go.dev/github.com/mikecinchan/tcg-deck-editor/pkg/auth
// [catalog.ErrUnavailable]: https://pkg.go.dev/github.com/mikecinchan/tcg-deck-editor/pkg/catalog#ErrUnavailable
package pkg
