package decks

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mikecinchan/tcg-deck-editor/pkg/catalog"
	errs "github.com/mikecinchan/tcg-deck-editor/pkg/errors"
)

// CardLookup resolves card ids against the catalog held in memory. It must
// not fetch. [*catalog.Service] implements it.
type CardLookup interface {
	Lookup(id string) (*catalog.Item, error)
}

// ServiceOptions configures a [Service].
type ServiceOptions struct {
	Cards CardLookup       // Rejects unknown card ids when set (optional)
	Now   func() time.Time // Clock (default: time.Now)
	NewID func() string    // Deck id generator (default: random UUID)
}

// Service manages decks on behalf of their owners.
type Service struct {
	store Store
	opts  ServiceOptions
}

// NewService creates a Service on top of store.
func NewService(store Store, opts ServiceOptions) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Service{store: store, opts: opts}
}

// List returns the owner's decks, most recently updated first.
func (s *Service) List(ctx context.Context, ownerID string) ([]Deck, error) {
	return s.store.List(ctx, ownerID)
}

// Get returns one of the owner's decks.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*Deck, error) {
	return s.store.Get(ctx, ownerID, id)
}

// Create validates in and stores it as a new deck of ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, in Input) (*Deck, error) {
	in, err := s.validate(in)
	if err != nil {
		return nil, err
	}
	now := s.opts.Now().UTC()
	d := &Deck{
		ID:        s.opts.NewID(),
		OwnerID:   ownerID,
		Name:      in.Name,
		Cards:     in.Cards,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Update replaces the name and cards of one of the owner's decks.
func (s *Service) Update(ctx context.Context, ownerID, id string, in Input) (*Deck, error) {
	in, err := s.validate(in)
	if err != nil {
		return nil, err
	}
	d, err := s.store.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	d.Name = in.Name
	d.Cards = in.Cards
	d.UpdatedAt = s.opts.Now().UTC()
	if err := s.store.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes one of the owner's decks.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	return s.store.Delete(ctx, ownerID, id)
}

// validate runs [Validate] and, with a CardLookup, rejects card ids the
// catalog does not know. A catalog that is not loaded yet does not block
// writes, and validation never waits for a catalog fetch.
func (s *Service) validate(in Input) (Input, error) {
	in, err := Validate(in)
	if err != nil || s.opts.Cards == nil {
		return in, err
	}
	for _, c := range in.Cards {
		_, err := s.opts.Cards.Lookup(c.CardID)
		switch {
		case err == nil:
		case errors.Is(err, catalog.ErrNotFound):
			return Input{}, errs.New(errs.ErrCodeInvalidCardID, "unknown card %s", c.CardID)
		case errors.Is(err, catalog.ErrUnavailable):
			return in, nil
		default:
			return Input{}, err
		}
	}
	return in, nil
}
