// Package catalog ingests the card catalog from an upstream card database
// and serves it from memory.
//
// # Pipeline
//
// A refresh runs three stages:
//
//  1. [Fetcher] lists the groups (sets) of the collection, fetches each
//     group in order, then fetches the full record of every item in
//     windows of [FetchOptions.BatchSize] concurrent requests.
//  2. [Normalizer] projects each raw record onto an [Item], an allow-list
//     of plain fields. Attack, weakness, resistance and ability data is
//     never copied.
//  3. [Store] publishes the result as one immutable [Snapshot].
//
// Each network call runs under [httputil.Do]: a per-call deadline inside an
// exponential backoff. Only a failure to list the groups fails a refresh;
// failed groups and items are logged and skipped.
//
// # Freshness
//
// A snapshot is fresh for [StoreOptions.TTL] (24h by default). Reading a
// stale or empty store triggers a refresh; concurrent readers share it. When
// the refresh fails, the stale snapshot is served and the failure is logged
// and reported through [observability.CatalogHooks.OnDegraded]. Only an
// empty store with a failed refresh returns [ErrUnavailable].
//
// # Cold starts
//
// A full fetch requests every card individually and can take minutes. A
// [Seed] persists each successful snapshot so a restarted process can serve
// it immediately; an old seed is still refreshed on the first read.
//
// # Usage
//
//	src := tcgdex.NewClient(backend, tcgdex.Options{})
//	svc := catalog.New(src, catalog.FetchOptions{Logger: logger}, catalog.StoreOptions{
//	    Seed:   catalog.NewSeed(backend, cache.SnapshotKey("tcgdex", "en", "tcgp")),
//	    Logger: logger,
//	})
//	items, err := svc.All(ctx)
//
// [httputil.Do]: github.com/mikecinchan/tcg-deck-editor/pkg/httputil.Do
// [observability.CatalogHooks.OnDegraded]: github.com/mikecinchan/tcg-deck-editor/pkg/observability.CatalogHooks
package catalog
