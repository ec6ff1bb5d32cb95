package decks

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps decks in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	decks map[string]Deck
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{decks: make(map[string]Deck)}
}

func (s *MemoryStore) List(_ context.Context, ownerID string) ([]Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Deck{}
	for _, d := range s.decks {
		if d.OwnerID == ownerID {
			out = append(out, clone(d))
		}
	}
	slices.SortFunc(out, func(a, b Deck) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, ownerID, id string) (*Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.decks[id]
	if !ok || d.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	d = clone(d)
	return &d, nil
}

func (s *MemoryStore) Create(_ context.Context, d *Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[d.ID] = clone(*d)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, d *Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.decks[d.ID]
	if !ok || cur.OwnerID != d.OwnerID {
		return ErrNotFound
	}
	s.decks[d.ID] = clone(*d)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.decks[id]
	if !ok || d.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.decks, id)
	return nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

func clone(d Deck) Deck {
	d.Cards = slices.Clone(d.Cards)
	return d
}

var _ Store = (*MemoryStore)(nil)
