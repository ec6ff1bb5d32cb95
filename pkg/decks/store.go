package decks

import (
	"context"

	errs "github.com/mikecinchan/tcg-deck-editor/pkg/errors"
)

// ErrNotFound is returned when a deck does not exist or belongs to another owner.
var ErrNotFound = errs.New(errs.ErrCodeDeckNotFound, "deck not found")

// Store persists decks. Implementations must be safe for concurrent use.
type Store interface {
	// List returns the owner's decks, most recently updated first.
	List(ctx context.Context, ownerID string) ([]Deck, error)

	// Get returns one of the owner's decks.
	Get(ctx context.Context, ownerID, id string) (*Deck, error)

	// Create stores a new deck.
	Create(ctx context.Context, d *Deck) error

	// Update replaces an existing deck of d.OwnerID.
	Update(ctx context.Context, d *Deck) error

	// Delete removes one of the owner's decks.
	Delete(ctx context.Context, ownerID, id string) error

	// Close releases the store's resources.
	Close(ctx context.Context) error
}
