package catalog

import (
	"context"
)

// Service is the entry point to the catalog for the rest of the
// application. It owns the [Store]; there is no package-level catalog.
type Service struct {
	store *Store
}

// NewService wraps store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// New wires a Service from a source with the given options.
func New(src Source, fetch FetchOptions, store StoreOptions) *Service {
	return NewService(NewStore(NewFetcher(src, fetch), store))
}

// All returns every catalog item in fetch order. It fails only when the
// cache is empty and the catalog cannot be fetched; the error then
// matches [ErrUnavailable].
func (s *Service) All(ctx context.Context) ([]Item, error) {
	return s.store.Get(ctx)
}

// ByID returns the item with the given id, or [ErrNotFound].
func (s *Service) ByID(ctx context.Context, id string) (*Item, error) {
	items, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return find(items, id)
}

// Lookup is ByID against the snapshot already in memory. It never fetches:
// with no snapshot loaded it returns [ErrUnavailable] at once.
func (s *Service) Lookup(id string) (*Item, error) {
	items := s.store.Peek()
	if len(items) == 0 {
		return nil, ErrUnavailable
	}
	return find(items, id)
}

func find(items []Item, id string) (*Item, error) {
	for i := range items {
		if items[i].ID == id {
			item := items[i]
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

// ByGroup returns the items of one group in fetch order.
func (s *Service) ByGroup(ctx context.Context, groupID string) ([]Item, error) {
	items, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	out := []Item{}
	for _, it := range items {
		if it.Group.ID == groupID {
			out = append(out, it)
		}
	}
	return out, nil
}

// Groups returns the distinct groups of the catalog in first-seen order.
func (s *Service) Groups(ctx context.Context) ([]GroupRef, error) {
	items, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	groups := groupsOf(items)
	if groups == nil {
		groups = []GroupRef{}
	}
	return groups, nil
}

// Invalidate clears the cached catalog; the next read refetches it.
func (s *Service) Invalidate() {
	s.store.Invalidate()
}

// Refresh fetches the catalog now and reports the resulting status.
func (s *Service) Refresh(ctx context.Context) (Status, error) {
	if _, err := s.store.Refresh(ctx); err != nil {
		return s.store.Status(), err
	}
	return s.store.Status(), nil
}

// Status reports the cache state without triggering a fetch.
func (s *Service) Status() Status {
	return s.store.Status()
}
