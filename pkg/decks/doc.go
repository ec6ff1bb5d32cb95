// Package decks stores user decks.
//
// A [Deck] is an owned, named list of [Card] references into the card
// catalog. Every saved deck holds exactly [Size] cards. [MaxCopies] is
// exported for clients that want to enforce the copy limit; this package
// does not.
//
// # Storage
//
// [Store] is implemented by [MemoryStore] (tests, local runs) and
// [MongoStore], which keeps decks in a MongoDB collection indexed by owner
// and recency. Stores never return another owner's deck: lookups for a
// foreign id report [ErrNotFound].
//
// # Service
//
// [Service] applies validation, assigns ids and timestamps, and optionally
// checks card ids against the catalog already in memory through
// [CardLookup]. A catalog that is still loading does not delay writes:
//
//	svc := decks.NewService(store, decks.ServiceOptions{Cards: catalogSvc})
//	deck, err := svc.Create(ctx, ownerID, decks.Input{Name: "Mewtwo ex", Cards: cards})
package decks
