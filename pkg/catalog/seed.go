package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mikecinchan/tcg-deck-editor/pkg/cache"
)

// Seed persists the last good snapshot so a restarted process can serve the
// catalog without waiting for a full fetch. A seeded snapshot keeps its
// original fetch time, so an old seed is still refreshed on first read.
type Seed struct {
	cache cache.Cache
	key   string
}

// NewSeed stores snapshots in c under key (see [cache.SnapshotKey]).
func NewSeed(c cache.Cache, key string) *Seed {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Seed{cache: c, key: key}
}

// Load returns the persisted snapshot, or nil if there is none.
func (s *Seed) Load(ctx context.Context) (*Snapshot, error) {
	data, ok, err := s.cache.Get(ctx, s.key)
	if err != nil || !ok {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}
	if snap.Empty() {
		return nil, nil
	}
	for i := range snap.Items {
		if snap.Items[i].Attributes.Types == nil {
			snap.Items[i].Attributes.Types = []string{}
		}
	}
	return &snap, nil
}

// Save persists snap without expiry.
func (s *Seed) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.key, data, 0)
}

// Clear removes the persisted snapshot.
func (s *Seed) Clear(ctx context.Context) error {
	return s.cache.Delete(ctx, s.key)
}
