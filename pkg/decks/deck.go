package decks

import (
	"strings"
	"time"

	errs "github.com/mikecinchan/tcg-deck-editor/pkg/errors"
)

const (
	Size      = 20 // Cards in every deck
	MaxCopies = 2  // Copies of one card a deck may hold (not enforced here)
)

// Deck is a saved deck.
type Deck struct {
	ID        string    `json:"id" bson:"_id"`
	OwnerID   string    `json:"ownerId" bson:"ownerId"`
	Name      string    `json:"name" bson:"name"`
	Cards     []Card    `json:"cards" bson:"cards"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Card references a catalog item by id. Count is at least 1.
type Card struct {
	CardID string `json:"cardId" bson:"cardId"`
	Count  int    `json:"count" bson:"count"`
}

// Input is the user-editable part of a deck.
type Input struct {
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Total returns the number of cards in the list.
func Total(cards []Card) int {
	n := 0
	for _, c := range cards {
		n += c.Count
	}
	return n
}

// Validate checks in and returns a normalized copy: the name is trimmed
// and cards are in their original order.
func Validate(in Input) (Input, error) {
	out := Input{Name: strings.TrimSpace(in.Name), Cards: make([]Card, 0, len(in.Cards))}
	if err := errs.ValidateDeckName(out.Name); err != nil {
		return Input{}, err
	}

	seen := make(map[string]bool, len(in.Cards))
	for _, c := range in.Cards {
		if err := errs.ValidateCardID(c.CardID); err != nil {
			return Input{}, err
		}
		if c.Count < 1 {
			return Input{}, errs.New(errs.ErrCodeInvalidDeck, "card %s: count must be at least 1", c.CardID)
		}
		if seen[c.CardID] {
			return Input{}, errs.New(errs.ErrCodeInvalidDeck, "card %s listed twice", c.CardID)
		}
		seen[c.CardID] = true
		out.Cards = append(out.Cards, c)
	}

	if n := Total(out.Cards); n != Size {
		return Input{}, errs.New(errs.ErrCodeInvalidDeck, "deck has %d cards, must have exactly %d", n, Size)
	}
	return out, nil
}
