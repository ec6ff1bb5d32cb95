// Package tcgdex provides an HTTP client for the TCGdex card database API.
//
// # Overview
//
// This package reads the Pokémon TCG Pocket catalog from TCGdex
// (https://tcgdex.dev). The collection is a "serie" (tcgp) made of sets,
// and each set lists its cards. [Client] implements [catalog.Source]:
//
//   - [Client.ListGroups]: GET /{lang}/series/{serie}
//   - [Client.GetGroup]: GET /{lang}/sets/{id}
//   - [Client.GetItem]: GET /{lang}/cards/{id}
//
// # Usage
//
//	client := tcgdex.NewClient(backend, tcgdex.Options{Language: "en"})
//	groups, err := client.ListGroups(ctx)
//	card, err := client.GetItem(ctx, "A1-001", false)
//
// # Caching
//
// Card detail responses are cached in the backend passed to [NewClient]
// because a full catalog fetch requests every card. Set and serie listings
// are never cached. Pass refresh=true to GetItem to bypass the cache.
//
// # Images
//
// Card images are served from [CDNBase]; the API sends image URLs without a
// quality or format suffix, which [catalog.Normalize] adds.
//
// [catalog.Source]: github.com/mikecinchan/tcg-deck-editor/pkg/catalog.Source
// [catalog.Normalize]: github.com/mikecinchan/tcg-deck-editor/pkg/catalog.Normalize
package tcgdex
